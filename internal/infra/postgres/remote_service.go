package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"level-assessment-service/internal/domain"
)

// RemoteService is the hosted mirror of results backed by Postgres.
// Teacher reads are scoped in SQL to students sharing a room with the teacher.
type RemoteService struct {
	pool *pgxpool.Pool
}

func NewRemoteService(pool *pgxpool.Pool) *RemoteService {
	return &RemoteService{pool: pool}
}

type remoteAnswer struct {
	Question int    `json:"question"`
	Answer   int    `json:"answer"`
	Correct  bool   `json:"correct"`
	Section  string `json:"section"`
}

func (s *RemoteService) SaveResult(ctx context.Context, user domain.User, result domain.Result) error {
	answers := make([]remoteAnswer, len(result.Answers))
	for i, a := range result.Answers {
		answers[i] = remoteAnswer{Question: a.QuestionIndex, Answer: a.SelectedIndex, Correct: a.IsCorrect, Section: a.Section}
	}
	data, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	if user.Email != "" {
		if _, err := s.pool.Exec(ctx, `
			INSERT INTO profiles (email, display_name) VALUES ($1, $2)
			ON CONFLICT (email) DO UPDATE SET display_name = EXCLUDED.display_name`,
			user.Email, user.DisplayName); err != nil {
			return fmt.Errorf("upsert profile: %w", err)
		}
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO assessment_results (result_id, user_email, level, description, score, variant, taken_at, answers)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb)`,
		result.ID, user.Email, result.Level, result.Description, result.CorrectCount,
		string(result.Variant), result.TakenAt, string(data))
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

func (s *RemoteService) FetchResultsForTeacher(ctx context.Context, teacher domain.User) ([]domain.StudentResult, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.result_id, r.user_email, COALESCE(p.display_name, r.user_email),
		       r.level, r.description, r.score, r.variant, r.taken_at, r.answers
		FROM assessment_results r
		LEFT JOIN profiles p ON p.email = r.user_email
		WHERE r.user_email IN (
			SELECT s.user_email
			FROM room_members s
			JOIN room_members t ON t.room_id = s.room_id
			WHERE t.user_email = $1 AND s.user_email <> $1
		)
		ORDER BY r.score DESC, r.taken_at DESC`, teacher.Email)
	if err != nil {
		return nil, fmt.Errorf("query teacher results: %w", err)
	}
	defer rows.Close()

	out := make([]domain.StudentResult, 0)
	for rows.Next() {
		var (
			sr      domain.StudentResult
			variant string
			takenAt time.Time
			raw     []byte
		)
		if err := rows.Scan(&sr.Result.ID, &sr.StudentEmail, &sr.DisplayName,
			&sr.Result.Level, &sr.Result.Description, &sr.Result.CorrectCount,
			&variant, &takenAt, &raw); err != nil {
			return nil, fmt.Errorf("scan teacher result: %w", err)
		}
		sr.Result.Variant = domain.Variant(variant)
		sr.Result.TakenAt = takenAt.UTC()

		var answers []remoteAnswer
		if err := json.Unmarshal(raw, &answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers: %w", err)
		}
		sr.Result.Answers = make([]domain.Answer, len(answers))
		for i, a := range answers {
			sr.Result.Answers[i] = domain.Answer{
				QuestionIndex: a.Question,
				SelectedIndex: a.Answer,
				IsCorrect:     a.Correct,
				Section:       a.Section,
				Variant:       sr.Result.Variant,
			}
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

func (s *RemoteService) SaveCurrentLevel(ctx context.Context, user domain.User, level, description string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO current_levels (user_email, level, description, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_email) DO UPDATE
		SET level = EXCLUDED.level, description = EXCLUDED.description, updated_at = now()`,
		user.Email, level, description)
	if err != nil {
		return fmt.Errorf("save current level: %w", err)
	}
	return nil
}

// AddRoomMember records email as a member of roomID.
func (s *RemoteService) AddRoomMember(ctx context.Context, roomID, email string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO room_members (room_id, user_email) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, roomID, email)
	if err != nil {
		return fmt.Errorf("add room member: %w", err)
	}
	return nil
}
