package config

import (
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TimeoutPolicy controls what happens when a quiz session's countdown
// reaches zero.
type TimeoutPolicy string

const (
	// TimeoutNone lets the clock stop at zero; the student may still
	// answer and submit manually.
	TimeoutNone TimeoutPolicy = "none"
	// TimeoutAutoSubmit submits whatever answers exist when time runs out.
	TimeoutAutoSubmit TimeoutPolicy = "auto_submit"
	// TimeoutLockInput freezes answer capture at zero but waits for an
	// explicit submit.
	TimeoutLockInput TimeoutPolicy = "lock_input"
)

type Config struct {
	Port          string
	BindAddress   string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	JWTSecret     string
	TimeoutPolicy TimeoutPolicy
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		BindAddress:   getEnv("BIND_ADDRESS", "localhost"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "studyhub"),
		DBPassword:    getEnv("DB_PASSWORD", "studyhub123"),
		DBName:        getEnv("DB_NAME", "studyhub"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		JWTSecret:     getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		TimeoutPolicy: loadTimeoutPolicy(),
	}
}

func loadTimeoutPolicy() TimeoutPolicy {
	switch TimeoutPolicy(getEnv("QUIZ_TIMEOUT_POLICY", "none")) {
	case TimeoutAutoSubmit:
		return TimeoutAutoSubmit
	case TimeoutLockInput:
		return TimeoutLockInput
	default:
		return TimeoutNone
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func InitRedis(cfg *Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: "", // no password set
		DB:       0,  // use default DB
	})

	return client
}
