package app

import (
	"context"

	"level-assessment-service/internal/domain"
)

// QuestionRepository serves the fixed question sequence of a variant (from cache/backing store).
type QuestionRepository interface {
	GetQuestions(ctx context.Context, variant domain.Variant) ([]domain.Question, error)
}

// KeyValueStore is the durable local surface backing the per-user result cache.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// RemoteDataService is the hosted backend mirroring results.
// FetchResultsForTeacher must only return results of students sharing a room with teacher.
type RemoteDataService interface {
	SaveResult(ctx context.Context, user domain.User, result domain.Result) error
	FetchResultsForTeacher(ctx context.Context, teacher domain.User) ([]domain.StudentResult, error)
	SaveCurrentLevel(ctx context.Context, user domain.User, level, description string) error
}
