package services

import (
	"errors"
	"sync"
	"time"

	"studyhub/models"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionSubmitted SessionStatus = "submitted"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrAlreadySubmitted = errors.New("quiz already submitted")
	ErrInputLocked      = errors.New("time is up, answers are locked")
	ErrUnknownQuestion  = errors.New("question does not belong to this quiz")
)

// Session holds one user's live attempt at a quiz. All state lives behind
// its mutex because the countdown goroutine and request handlers touch it
// concurrently.
type Session struct {
	ID     string
	UserID uint
	Quiz   models.Quiz

	mu         sync.Mutex
	status     SessionStatus
	index      int
	remaining  int
	answers    map[uint]string
	locked     bool
	submitting bool
	startedAt  time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

func newSession(userID uint, quiz models.Quiz) *Session {
	return &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Quiz:      quiz,
		status:    SessionActive,
		index:     0,
		remaining: quiz.DurationMinutes * 60,
		answers:   make(map[uint]string),
		startedAt: time.Now(),
		stop:      make(chan struct{}),
	}
}

// SetAnswer records or overwrites the answer for one question. Answers
// survive navigation in both directions.
func (s *Session) SetAnswer(questionID uint, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != SessionActive {
		return ErrAlreadySubmitted
	}
	if s.locked {
		return ErrInputLocked
	}

	for _, q := range s.Quiz.Questions {
		if q.ID == questionID {
			s.answers[questionID] = value
			return nil
		}
	}
	return ErrUnknownQuestion
}

// Next moves to the following question. At the last question it does
// nothing; the boundary is not an error.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index < len(s.Quiz.Questions)-1 {
		s.index++
	}
}

// Previous moves back one question, stopping at the first.
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index > 0 {
		s.index--
	}
}

// Tick advances the countdown by one second. It reports the remaining
// time, whether this tick hit zero, and whether the session still wants
// ticks at all.
func (s *Session) Tick() (remaining int, expired bool, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != SessionActive || s.remaining <= 0 {
		return s.remaining, false, false
	}

	s.remaining--
	return s.remaining, s.remaining == 0, true
}

// LockInput freezes answer capture without ending the session; the
// lock_input timeout policy uses it.
func (s *Session) LockInput() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = true
}

// beginSubmit claims the one allowed submission. A second call while the
// first is still in flight, or after success, gets ErrAlreadySubmitted.
func (s *Session) beginSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != SessionActive || s.submitting {
		return ErrAlreadySubmitted
	}
	s.submitting = true
	return nil
}

// finishSubmit releases the submission claim. On success the session
// becomes terminal; on failure it stays active so the user can retry
// with answers intact.
func (s *Session) finishSubmit(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.submitting = false
	if ok {
		s.status = SessionSubmitted
	}
}

// Stop cancels the countdown goroutine. Safe to call more than once.
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// answersCopy snapshots the answer map for scoring outside the lock.
func (s *Session) answersCopy() map[uint]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[uint]string, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// elapsedSeconds derives time taken from the countdown, clamped to the
// quiz duration.
func (s *Session) elapsedSeconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := s.Quiz.DurationMinutes * 60
	elapsed := total - s.remaining
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > total {
		elapsed = total
	}
	return elapsed
}

// SessionQuestion is the delivery view of a question. Correct answers are
// deliberately absent while the attempt runs.
type SessionQuestion struct {
	ID          uint              `json:"id"`
	Text        string            `json:"question_text"`
	Type        string            `json:"question_type"`
	Options     models.OptionList `json:"options,omitempty"`
	Points      int               `json:"points"`
	OrderNumber int               `json:"order_number"`
}

// SessionState is the JSON snapshot served to clients and mirrored to
// redis.
type SessionState struct {
	ID               string            `json:"session_id"`
	QuizID           uint              `json:"quiz_id"`
	UserID           uint              `json:"user_id"`
	Title            string            `json:"title"`
	Subject          string            `json:"subject"`
	XPReward         int               `json:"xp_reward"`
	Status           SessionStatus     `json:"status"`
	CurrentIndex     int               `json:"current_question_index"`
	TotalQuestions   int               `json:"total_questions"`
	RemainingSeconds int               `json:"remaining_seconds"`
	InputLocked      bool              `json:"input_locked"`
	Answers          map[uint]string   `json:"answers"`
	Questions        []SessionQuestion `json:"questions"`
}

// Snapshot renders the current state without correct answers.
func (s *Session) Snapshot() *SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions := make([]SessionQuestion, len(s.Quiz.Questions))
	for i, q := range s.Quiz.Questions {
		questions[i] = SessionQuestion{
			ID:          q.ID,
			Text:        q.Text,
			Type:        q.Type,
			Options:     q.Options,
			Points:      q.Points,
			OrderNumber: q.OrderNumber,
		}
	}

	answers := make(map[uint]string, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}

	return &SessionState{
		ID:               s.ID,
		QuizID:           s.Quiz.ID,
		UserID:           s.UserID,
		Title:            s.Quiz.Title,
		Subject:          s.Quiz.Subject,
		XPReward:         s.Quiz.XPReward,
		Status:           s.status,
		CurrentIndex:     s.index,
		TotalQuestions:   len(s.Quiz.Questions),
		RemainingSeconds: s.remaining,
		InputLocked:      s.locked,
		Answers:          answers,
		Questions:        questions,
	}
}
