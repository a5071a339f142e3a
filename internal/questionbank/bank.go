// Package questionbank holds the built-in, versioned question sets for each
// assessment variant. Order and options are fixed; nothing is shuffled.
package questionbank

import (
	"context"
	"fmt"

	"level-assessment-service/internal/domain"
)

// Version is bumped whenever a built-in set changes.
const Version = 2

// Questions returns the fixed 10-question sequence for variant.
// Unknown variants fall back to the general set.
func Questions(variant domain.Variant) []domain.Question {
	src, ok := sets[variant]
	if !ok {
		src = sets[domain.VariantGeneral]
	}
	out := make([]domain.Question, len(src))
	for i, q := range src {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}

// Set returns the versioned set for variant, applying the same fallback as Questions.
func Set(variant domain.Variant) domain.QuestionSet {
	if !variant.IsKnown() {
		variant = domain.VariantGeneral
	}
	return domain.QuestionSet{Variant: variant, Version: Version, Questions: Questions(variant)}
}

// Sections lists the distinct section labels of a variant in question order.
func Sections(variant domain.Variant) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range Questions(variant) {
		if !seen[q.Section] {
			seen[q.Section] = true
			out = append(out, q.Section)
		}
	}
	return out
}

// Validate checks the length, option count and correct-index invariants.
func Validate(questions []domain.Question) error {
	if len(questions) != domain.QuestionsPerTest {
		return fmt.Errorf("%w: want %d questions, got %d", domain.ErrInvalidQuestionSet, domain.QuestionsPerTest, len(questions))
	}
	for i, q := range questions {
		if q.ID != i {
			return fmt.Errorf("%w: question %d has id %d", domain.ErrInvalidQuestionSet, i, q.ID)
		}
		if len(q.Options) != domain.OptionsPerQuestion {
			return fmt.Errorf("%w: question %d has %d options", domain.ErrInvalidQuestionSet, i, len(q.Options))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return fmt.Errorf("%w: question %d correct index %d", domain.ErrInvalidQuestionSet, i, q.CorrectIndex)
		}
		if q.Section == "" {
			return fmt.Errorf("%w: question %d has no section", domain.ErrInvalidQuestionSet, i)
		}
	}
	return nil
}

// Loader serves the built-in sets through the same interface as stored ones.
type Loader struct{}

func NewLoader() Loader {
	return Loader{}
}

func (Loader) LoadQuestions(_ context.Context, variant domain.Variant) (domain.QuestionSet, error) {
	return Set(variant), nil
}
