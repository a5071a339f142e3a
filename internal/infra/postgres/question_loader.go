package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"level-assessment-service/internal/domain"
	"level-assessment-service/internal/questionbank"
)

// QuestionLoader loads question set JSONB from Postgres, falling back to the
// built-in bank when a variant has not been seeded.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) LoadQuestions(ctx context.Context, variant domain.Variant) (domain.QuestionSet, error) {
	var (
		version int
		raw     []byte
	)
	err := l.pool.QueryRow(ctx, `SELECT version, data FROM question_sets WHERE variant=$1`, string(variant)).Scan(&version, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return questionbank.Set(variant), nil
	}
	if err != nil {
		return domain.QuestionSet{}, fmt.Errorf("load question set: %w", err)
	}
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return domain.QuestionSet{}, fmt.Errorf("unmarshal question set: %w", err)
	}
	if err := questionbank.Validate(questions); err != nil {
		return domain.QuestionSet{}, err
	}
	return domain.QuestionSet{Variant: variant, Version: version, Questions: questions}, nil
}

// SaveQuestionSet upserts set, keeping the stored copy when it is newer.
func SaveQuestionSet(ctx context.Context, pool *pgxpool.Pool, set domain.QuestionSet) (bool, error) {
	if err := questionbank.Validate(set.Questions); err != nil {
		return false, err
	}
	data, err := json.Marshal(set.Questions)
	if err != nil {
		return false, fmt.Errorf("marshal question set: %w", err)
	}
	tag, err := pool.Exec(ctx, `
		INSERT INTO question_sets (variant, version, data, updated_at)
		VALUES ($1, $2, $3::jsonb, now())
		ON CONFLICT (variant) DO UPDATE
		SET version = EXCLUDED.version, data = EXCLUDED.data, updated_at = now()
		WHERE question_sets.version < EXCLUDED.version`,
		string(set.Variant), set.Version, string(data))
	if err != nil {
		return false, fmt.Errorf("save question set: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
