package http

import (
	"errors"
	"time"

	"level-assessment-service/internal/app"
	"level-assessment-service/internal/domain"
)

// questionView hides the correct option from clients.
type questionView struct {
	Index   int      `json:"index"`
	Section string   `json:"section"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

type answerView struct {
	Question int    `json:"question"`
	Answer   int    `json:"answer"`
	Correct  bool   `json:"correct"`
	Section  string `json:"section"`
}

type resultView struct {
	ID          int64          `json:"id"`
	Level       string         `json:"level"`
	Description string         `json:"description"`
	Score       int            `json:"score"`
	Variant     domain.Variant `json:"variant"`
	Date        time.Time      `json:"date"`
	Answers     []answerView   `json:"answers"`
}

type completedView struct {
	Result     resultView        `json:"result"`
	Descriptor domain.Descriptor `json:"descriptor"`
}

type sessionView struct {
	ID              string         `json:"id"`
	Variant         domain.Variant `json:"variant"`
	Status          app.Status     `json:"status"`
	CurrentQuestion int            `json:"currentQuestion"`
	Total           int            `json:"total"`
}

type errorPayload struct {
	Command string `json:"command,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type noticePayload struct {
	Message string `json:"message"`
}

func toQuestionView(q domain.Question) questionView {
	return questionView{
		Index:   q.ID,
		Section: q.Section,
		Prompt:  q.Prompt,
		Options: append([]string(nil), q.Options...),
	}
}

func toQuestionViews(qs []domain.Question) []questionView {
	out := make([]questionView, len(qs))
	for i, q := range qs {
		out[i] = toQuestionView(q)
	}
	return out
}

func toAnswerView(a domain.Answer) answerView {
	return answerView{Question: a.QuestionIndex, Answer: a.SelectedIndex, Correct: a.IsCorrect, Section: a.Section}
}

func toResultView(r domain.Result) resultView {
	answers := make([]answerView, len(r.Answers))
	for i, a := range r.Answers {
		answers[i] = toAnswerView(a)
	}
	return resultView{
		ID:          r.ID,
		Level:       r.Level,
		Description: r.Description,
		Score:       r.CorrectCount,
		Variant:     r.Variant,
		Date:        r.TakenAt,
		Answers:     answers,
	}
}

func toResultViews(rs []domain.Result) []resultView {
	out := make([]resultView, len(rs))
	for i, r := range rs {
		out[i] = toResultView(r)
	}
	return out
}

func toSessionView(s app.Snapshot) sessionView {
	return sessionView{
		ID:              s.ID,
		Variant:         s.Variant,
		Status:          s.Status,
		CurrentQuestion: s.CurrentQuestion,
		Total:           domain.QuestionsPerTest,
	}
}

// describeError maps engine errors to a stable code and advisory text.
func describeError(err error) (string, string) {
	switch {
	case errors.Is(err, domain.ErrTeacherCannotTakeTest):
		return "teacher_cannot_take_test", app.NoticeTeacherCannotTakeTest
	case errors.Is(err, domain.ErrTeacherOnly):
		return "teacher_only", "Only teachers can view student results."
	case errors.Is(err, domain.ErrSessionNotInProgress):
		return "not_in_progress", "There is no test in progress."
	case errors.Is(err, domain.ErrInvalidOption):
		return "invalid_option", app.NoticeInvalidOption
	case errors.Is(err, domain.ErrResultNotFound):
		return "not_found", "That result no longer exists."
	case errors.Is(err, domain.ErrDeleteNotConfirmed):
		return "not_confirmed", "Delete cancelled."
	case errors.Is(err, domain.ErrIntegrateFailed):
		return "integrate_failed", app.NoticeIntegrateFailed
	case errors.Is(err, domain.ErrNoResults):
		return "no_results", "Take a test first to share your level."
	case errors.Is(err, errInvalidPayload):
		return "invalid_payload", "The request could not be understood."
	case errors.Is(err, errUnsupportedCommand):
		return "unsupported", "unsupported message type"
	default:
		return "internal", "Something went wrong. Please try again."
	}
}
