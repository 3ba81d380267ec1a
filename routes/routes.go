package routes

import (
	"log"
	"net/http"

	"studyhub/handlers"
	"studyhub/middleware"
	"studyhub/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	quizHandler *handlers.QuizHandler,
	sessionHandler *handlers.SessionHandler,
	progressHandler *handlers.ProgressHandler,
	hub *services.Hub,
	jwtSecret string,
) {
	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			// User profile
			protected.GET("/auth/profile", authHandler.GetProfile)

			// Catalog: any signed-in user can browse published quizzes
			protected.GET("/quizzes", quizHandler.ListPublished)

			// Authoring routes, teachers and admins only
			authoring := protected.Group("/quizzes")
			authoring.Use(middleware.RequireAuthor())
			{
				authoring.GET("/mine", quizHandler.ListOwn)
				authoring.POST("", quizHandler.CreateQuiz)
				authoring.GET("/:id", quizHandler.GetQuizByID)
				authoring.PUT("/:id", quizHandler.UpdateQuiz)
				authoring.PATCH("/:id/publish", quizHandler.SetPublished)
				authoring.DELETE("/:id", quizHandler.DeleteQuiz)
			}

			// Quiz attempt sessions
			sessions := protected.Group("/sessions")
			{
				sessions.POST("", sessionHandler.Start)
				sessions.GET("/:id", sessionHandler.GetState)
				sessions.POST("/:id/answer", sessionHandler.Answer)
				sessions.POST("/:id/next", sessionHandler.Next)
				sessions.POST("/:id/previous", sessionHandler.Previous)
				sessions.POST("/:id/submit", sessionHandler.Submit)
				sessions.DELETE("/:id", sessionHandler.Abandon)
			}

			// Dashboard reads
			protected.GET("/results", progressHandler.ListResults)
			protected.GET("/stats", progressHandler.GetStats)
		}
	}

	// WebSocket endpoint for user notifications. Browsers cannot set an
	// Authorization header on the upgrade request, so the token rides in
	// a query parameter.
	router.GET("/ws/notifications", func(c *gin.Context) {
		token := c.Query("token")
		userID, _, err := middleware.ParseToken(token, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
			return
		}

		log.Printf("Notification channel opened for user %d", userID)
		hub.RegisterClient(conn, userID)
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
