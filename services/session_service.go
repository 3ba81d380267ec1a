package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"studyhub/config"
	"studyhub/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var ErrQuizNotFound = errors.New("quiz not found")

// SessionService runs timed quiz attempts. Live sessions are held in
// memory and mirrored to redis; one goroutine per session drives the
// one-second countdown.
type SessionService struct {
	db      *gorm.DB
	redis   *redis.Client
	quizzes *QuizService
	hub     *Hub
	policy  config.TimeoutPolicy

	mutex    sync.RWMutex
	sessions map[string]*Session
}

func NewSessionService(db *gorm.DB, redisClient *redis.Client, quizzes *QuizService, hub *Hub, policy config.TimeoutPolicy) *SessionService {
	return &SessionService{
		db:       db,
		redis:    redisClient,
		quizzes:  quizzes,
		hub:      hub,
		policy:   policy,
		sessions: make(map[string]*Session),
	}
}

// SubmitOutcome is what the user sees after grading.
type SubmitOutcome struct {
	SessionID    string            `json:"session_id"`
	ScorePercent int               `json:"score_percent"`
	RawPoints    int               `json:"raw_points"`
	TotalPoints  int               `json:"total_points"`
	XPAwarded    int               `json:"xp_awarded"`
	Result       models.QuizResult `json:"result"`
}

// Start loads the quiz with its ordered questions and opens an attempt.
// A missing quiz or an empty question set never produces a session.
func (s *SessionService) Start(userID uint, quizID uint) (*SessionState, error) {
	quiz, err := s.quizzes.GetAttemptableQuiz(quizID, userID)
	if err != nil {
		return nil, ErrQuizNotFound
	}
	if len(quiz.Questions) == 0 {
		return nil, ErrQuizNotFound
	}

	session := newSession(userID, *quiz)

	s.mutex.Lock()
	s.sessions[session.ID] = session
	s.mutex.Unlock()

	s.storeSessionState(session)
	go s.runCountdown(session)

	log.Printf("Session %s started: quiz %d, user %d, %d seconds on the clock",
		session.ID, quiz.ID, userID, quiz.DurationMinutes*60)

	return session.Snapshot(), nil
}

// runCountdown decrements the session clock once per second until the
// session is torn down or the clock hits zero.
func (s *SessionService) runCountdown(session *Session) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-session.stop:
			return
		case <-ticker.C:
			remaining, expired, active := session.Tick()
			if !active {
				return
			}

			s.storeSessionState(session)

			if expired {
				s.handleExpiry(session)
				return
			}

			if remaining%60 == 0 || remaining <= 10 {
				log.Printf("Session %s: %d seconds remaining", session.ID, remaining)
			}
		}
	}
}

// handleExpiry applies the configured timeout policy once the clock
// reaches zero.
func (s *SessionService) handleExpiry(session *Session) {
	log.Printf("Session %s: time expired (policy %s)", session.ID, s.policy)

	switch s.policy {
	case config.TimeoutAutoSubmit:
		if _, err := s.Submit(session.ID, session.UserID); err != nil && !errors.Is(err, ErrAlreadySubmitted) {
			log.Printf("Session %s: auto-submit failed: %v", session.ID, err)
			s.hub.Notify(session.UserID, NotifyError, "Time is up, but submitting your quiz failed. Please submit again.")
		}
	case config.TimeoutLockInput:
		session.LockInput()
		s.storeSessionState(session)
		s.hub.Notify(session.UserID, NotifyInfo, "Time is up. Your answers are locked; submit when ready.")
	default:
		// Clock stops at zero; the user keeps control.
	}
}

func (s *SessionService) get(sessionID string, userID uint) (*Session, error) {
	s.mutex.RLock()
	session, ok := s.sessions[sessionID]
	s.mutex.RUnlock()

	if !ok || session.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// State returns a snapshot for client re-sync.
func (s *SessionService) State(sessionID string, userID uint) (*SessionState, error) {
	session, err := s.get(sessionID, userID)
	if err != nil {
		return nil, err
	}
	return session.Snapshot(), nil
}

// Answer records one answer, overwriting any earlier value for that
// question.
func (s *SessionService) Answer(sessionID string, userID uint, questionID uint, value string) (*SessionState, error) {
	session, err := s.get(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := session.SetAnswer(questionID, value); err != nil {
		return nil, err
	}
	s.storeSessionState(session)
	return session.Snapshot(), nil
}

// Next advances to the following question; a no-op on the last one.
func (s *SessionService) Next(sessionID string, userID uint) (*SessionState, error) {
	session, err := s.get(sessionID, userID)
	if err != nil {
		return nil, err
	}
	session.Next()
	s.storeSessionState(session)
	return session.Snapshot(), nil
}

// Previous steps back one question; a no-op on the first one.
func (s *SessionService) Previous(sessionID string, userID uint) (*SessionState, error) {
	session, err := s.get(sessionID, userID)
	if err != nil {
		return nil, err
	}
	session.Previous()
	s.storeSessionState(session)
	return session.Snapshot(), nil
}

// Submit grades the attempt exactly once. The result insert and the XP
// increment share a transaction, and XP is bumped with a server-side
// expression so concurrent sessions cannot lose updates.
func (s *SessionService) Submit(sessionID string, userID uint) (*SubmitOutcome, error) {
	session, err := s.get(sessionID, userID)
	if err != nil {
		return nil, err
	}

	if err := session.beginSubmit(); err != nil {
		return nil, err
	}

	score, err := ScoreQuiz(session.Quiz.Questions, session.answersCopy())
	if err != nil {
		session.finishSubmit(false)
		return nil, err
	}

	result := models.QuizResult{
		UserID:           userID,
		Subject:          session.Quiz.Subject,
		Score:            score.ScorePercent,
		TotalQuestions:   len(session.Quiz.Questions),
		TimeTakenSeconds: session.elapsedSeconds(),
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&result).Error; err != nil {
		tx.Rollback()
		session.finishSubmit(false)
		s.hub.Notify(userID, NotifyError, "Failed to submit quiz. Your answers are saved, please try again.")
		return nil, err
	}

	if err := tx.Model(&models.UserStats{}).
		Where("user_id = ?", userID).
		Update("xp", gorm.Expr("xp + ?", session.Quiz.XPReward)).Error; err != nil {
		tx.Rollback()
		session.finishSubmit(false)
		s.hub.Notify(userID, NotifyError, "Failed to submit quiz. Your answers are saved, please try again.")
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		session.finishSubmit(false)
		s.hub.Notify(userID, NotifyError, "Failed to submit quiz. Your answers are saved, please try again.")
		return nil, err
	}

	session.finishSubmit(true)
	session.Stop()
	s.storeSessionState(session)

	message := fmt.Sprintf("Quiz completed! Score: %d%% (+%d XP)", score.ScorePercent, session.Quiz.XPReward)
	s.hub.Notify(userID, NotifySuccess, message)
	log.Printf("Session %s submitted: score %d%%, +%d XP for user %d",
		session.ID, score.ScorePercent, session.Quiz.XPReward, userID)

	return &SubmitOutcome{
		SessionID:    session.ID,
		ScorePercent: score.ScorePercent,
		RawPoints:    score.RawPoints,
		TotalPoints:  score.TotalPoints,
		XPAwarded:    session.Quiz.XPReward,
		Result:       result,
	}, nil
}

// Abandon tears a session down: the countdown is cancelled and the
// mirrored state dropped, so nothing arriving later can touch it.
func (s *SessionService) Abandon(sessionID string, userID uint) error {
	session, err := s.get(sessionID, userID)
	if err != nil {
		return err
	}

	session.Stop()

	s.mutex.Lock()
	delete(s.sessions, sessionID)
	s.mutex.Unlock()

	if err := s.redis.Del(context.Background(), "session:"+sessionID).Err(); err != nil {
		log.Printf("Failed to drop session state for %s: %v", sessionID, err)
	}

	log.Printf("Session %s abandoned by user %d", sessionID, userID)
	return nil
}

func (s *SessionService) storeSessionState(session *Session) {
	state := session.Snapshot()

	data, err := json.Marshal(state)
	if err != nil {
		log.Printf("Failed to marshal session state for %s: %v", session.ID, err)
		return
	}

	// Expire well after the longest plausible attempt
	if err := s.redis.Set(context.Background(), "session:"+session.ID, data, 2*time.Hour).Err(); err != nil {
		log.Printf("Failed to store session state for %s: %v", session.ID, err)
	}
}
