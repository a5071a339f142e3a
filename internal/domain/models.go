package domain

import "time"

// QuestionsPerTest is the fixed length of every assessment run.
const QuestionsPerTest = 10

// OptionsPerQuestion is the number of choices each question offers.
const OptionsPerQuestion = 4

// Question models an MCQ item with exactly one correct option.
type Question struct {
	ID           int      `json:"id"`
	Section      string   `json:"section"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// QuestionSet is a versioned, ordered list of questions for one variant.
type QuestionSet struct {
	Variant   Variant    `json:"variant"`
	Version   int        `json:"version"`
	Questions []Question `json:"questions"`
}

// Answer is appended once per question and never mutated afterwards.
type Answer struct {
	QuestionIndex int     `json:"question"`
	SelectedIndex int     `json:"answer"`
	IsCorrect     bool    `json:"correct"`
	Section       string  `json:"section"`
	Variant       Variant `json:"-"`
}

// Descriptor is the scorer output for a correct-answer count.
type Descriptor struct {
	Level        string   `json:"level"`
	Description  string   `json:"description"`
	NumericScore *float64 `json:"numericScore,omitempty"`
}

// Result is a persisted assessment outcome owned by the user who took the test.
type Result struct {
	ID           int64
	Level        string
	Description  string
	CorrectCount int
	Variant      Variant
	TakenAt      time.Time
	Answers      []Answer
}

// NewResult builds a result stamped with the given time; the ID is the creation time in unix millis.
func NewResult(variant Variant, desc Descriptor, answers []Answer, now time.Time) Result {
	copied := make([]Answer, len(answers))
	copy(copied, answers)
	correct := 0
	for _, a := range copied {
		if a.IsCorrect {
			correct++
		}
	}
	return Result{
		ID:           now.UnixMilli(),
		Level:        desc.Level,
		Description:  desc.Description,
		CorrectCount: correct,
		Variant:      variant,
		TakenAt:      now,
		Answers:      copied,
	}
}

// Descriptor returns the level/description pair recorded on the result.
func (r Result) Descriptor() Descriptor {
	return Descriptor{Level: r.Level, Description: r.Description}
}

// StudentResult is a remote result joined with the submitting user's identity.
type StudentResult struct {
	StudentEmail string
	DisplayName  string
	Result       Result
}

// Tier is the qualitative annotation shown next to a score in the teacher view.
type Tier string

const (
	TierExcellent Tier = "Excellent"
	TierAverage   Tier = "Average"
	TierNeedsWork Tier = "Needs Work"
)

// TierFor maps a 0..10 score to its display tier.
func TierFor(score int) Tier {
	switch {
	case score >= 8:
		return TierExcellent
	case score >= 5:
		return TierAverage
	default:
		return TierNeedsWork
	}
}

// TeacherRow is a read-only projection of a student's remote result.
type TeacherRow struct {
	Rank         int       `json:"rank"`
	StudentEmail string    `json:"studentEmail"`
	DisplayName  string    `json:"displayName"`
	Level        string    `json:"level"`
	Description  string    `json:"description"`
	Score        int       `json:"score"`
	Variant      Variant   `json:"variant"`
	TakenAt      time.Time `json:"takenAt"`
	Tier         Tier      `json:"tier"`
}

// TeacherSummary aggregates the rows of a teacher panel.
type TeacherSummary struct {
	Count        int          `json:"count"`
	AverageScore float64      `json:"averageScore"`
	PerTier      map[Tier]int `json:"perTier"`
}

// TeacherPanel is what the teacher view renders. Error is advisory text.
type TeacherPanel struct {
	Rows    []TeacherRow   `json:"rows"`
	Summary TeacherSummary `json:"summary"`
	Error   string         `json:"error,omitempty"`
}
