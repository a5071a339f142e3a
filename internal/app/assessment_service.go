package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"level-assessment-service/internal/domain"
	"level-assessment-service/internal/scoring"
)

// AssessmentService contains the assessment use cases.
type AssessmentService struct {
	questions QuestionRepository
	results   *ResultStore
	identity  IdentityProvider
	notifier  Notifier
	now       func() time.Time
}

func NewAssessmentService(questions QuestionRepository, results *ResultStore, identity IdentityProvider, notifier Notifier) *AssessmentService {
	return &AssessmentService{
		questions: questions,
		results:   results,
		identity:  identity,
		notifier:  notifier,
		now:       time.Now,
	}
}

// WithClock swaps the time source; used for deterministic result IDs in tests.
func (s *AssessmentService) WithClock(now func() time.Time) *AssessmentService {
	s.now = now
	return s
}

// Questions returns the question sequence for variant, falling back to general.
func (s *AssessmentService) Questions(ctx context.Context, variant string) ([]domain.Question, error) {
	return s.questions.GetQuestions(ctx, domain.NormalizeVariant(variant))
}

// Results exposes the store backing completed sessions.
func (s *AssessmentService) Results() *ResultStore {
	return s.results
}

// NewSession creates an idle session bound to the caller's identity.
// The caller owns it; nothing is persisted until the run completes.
func (s *AssessmentService) NewSession(ctx context.Context) *Session {
	return &Session{
		id:     uuid.NewString(),
		svc:    s,
		user:   s.identity.CurrentUser(ctx),
		status: StatusNotStarted,
	}
}

// Status is the lifecycle state of a Session.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Session is one run of a test.
type Session struct {
	id   string
	svc  *AssessmentService
	user *domain.User

	mu        sync.Mutex
	variant   domain.Variant
	questions []domain.Question
	current   int
	answers   []domain.Answer
	status    Status
	result    *domain.Result
}

// Snapshot is a copy of a session's state.
type Snapshot struct {
	ID              string          `json:"id"`
	Variant         domain.Variant  `json:"variant"`
	CurrentQuestion int             `json:"currentQuestion"`
	Answers         []domain.Answer `json:"answers"`
	Status          Status          `json:"status"`
	Result          *domain.Result  `json:"-"`
}

func (s *Session) ID() string {
	return s.id
}

// Start resets the session to the first question of variant, discarding any run in progress.
func (s *Session) Start(ctx context.Context, variant string) error {
	if s.user != nil && s.user.IsTeacher() {
		s.svc.notifier.Alert(ctx, NoticeTeacherCannotTakeTest)
		return domain.ErrTeacherCannotTakeTest
	}

	v := domain.NormalizeVariant(variant)
	questions, err := s.svc.questions.GetQuestions(ctx, v)
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}
	if len(questions) != domain.QuestionsPerTest {
		return fmt.Errorf("%w: %s has %d questions", domain.ErrInvalidQuestionSet, v, len(questions))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusInProgress {
		log.Printf("session %s: discarding %s run at question %d", s.id, s.variant, s.current)
	}
	s.variant = v
	s.questions = questions
	s.current = 0
	s.answers = make([]domain.Answer, 0, domain.QuestionsPerTest)
	s.status = StatusInProgress
	s.result = nil
	return nil
}

// SubmitAnswer records the choice for the current question and advances.
// The final answer completes the run, scores it and saves the result; a
// persistence error is returned alongside the completed result.
func (s *Session) SubmitAnswer(ctx context.Context, selectedIndex int) (domain.Answer, *domain.Result, error) {
	s.mu.Lock()
	switch s.status {
	case StatusNotStarted:
		s.mu.Unlock()
		s.svc.notifier.Alert(ctx, NoticeTestNotStarted)
		return domain.Answer{}, nil, domain.ErrSessionNotInProgress
	case StatusCompleted:
		s.mu.Unlock()
		s.svc.notifier.Alert(ctx, NoticeTestFinished)
		return domain.Answer{}, nil, domain.ErrSessionNotInProgress
	}

	question := s.questions[s.current]
	if selectedIndex < 0 || selectedIndex >= len(question.Options) {
		s.mu.Unlock()
		s.svc.notifier.Alert(ctx, NoticeInvalidOption)
		return domain.Answer{}, nil, domain.ErrInvalidOption
	}

	answer := domain.Answer{
		QuestionIndex: s.current,
		SelectedIndex: selectedIndex,
		IsCorrect:     selectedIndex == question.CorrectIndex,
		Section:       question.Section,
		Variant:       s.variant,
	}
	s.answers = append(s.answers, answer)
	s.current++

	if s.current < len(s.questions) {
		s.mu.Unlock()
		return answer, nil, nil
	}

	s.status = StatusCompleted
	correct := 0
	for _, a := range s.answers {
		if a.IsCorrect {
			correct++
		}
	}
	desc := scoring.Score(s.variant, correct)
	result := domain.NewResult(s.variant, desc, s.answers, s.svc.now().UTC())
	s.result = &result
	s.mu.Unlock()

	if err := s.svc.results.Save(ctx, result); err != nil {
		return answer, &result, fmt.Errorf("persist result: %w", err)
	}
	return answer, &result, nil
}

// CurrentQuestion returns the question awaiting an answer.
func (s *Session) CurrentQuestion() (domain.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusInProgress {
		return domain.Question{}, false
	}
	return s.questions[s.current], true
}

// Descriptor returns the scored descriptor once the run has completed.
func (s *Session) Descriptor() (domain.Descriptor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusCompleted {
		return domain.Descriptor{}, false
	}
	return scoring.Score(s.variant, s.result.CorrectCount), true
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	answers := make([]domain.Answer, len(s.answers))
	copy(answers, s.answers)
	snap := Snapshot{
		ID:              s.id,
		Variant:         s.variant,
		CurrentQuestion: s.current,
		Answers:         answers,
		Status:          s.status,
	}
	if s.result != nil {
		r := *s.result
		snap.Result = &r
	}
	return snap
}
