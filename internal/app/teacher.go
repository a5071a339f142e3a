package app

import (
	"context"
	"log"
	"sort"

	"level-assessment-service/internal/domain"
)

// TeacherAggregator renders remote results of students sharing a room with the teacher.
// It only reads the remote service; the local result cache is not reachable from here.
type TeacherAggregator struct {
	remote   RemoteDataService
	identity IdentityProvider
}

func NewTeacherAggregator(remote RemoteDataService, identity IdentityProvider) *TeacherAggregator {
	return &TeacherAggregator{remote: remote, identity: identity}
}

// Render builds the teacher panel. A fetch failure yields an error panel with
// no rows rather than an error, so the rest of the page keeps working.
func (a *TeacherAggregator) Render(ctx context.Context) (domain.TeacherPanel, error) {
	user := a.identity.CurrentUser(ctx)
	if user == nil || !user.IsTeacher() {
		return domain.TeacherPanel{}, domain.ErrTeacherOnly
	}

	submissions, err := a.remote.FetchResultsForTeacher(ctx, *user)
	if err != nil {
		log.Printf("fetch results for teacher %s: %v", user.StorageKey(), err)
		return domain.TeacherPanel{
			Rows:    []domain.TeacherRow{},
			Summary: summarize(nil),
			Error:   NoticeTeacherFetchFailed,
		}, nil
	}

	rows := make([]domain.TeacherRow, 0, len(submissions))
	for _, sub := range submissions {
		name := sub.DisplayName
		if name == "" {
			name = sub.StudentEmail
		}
		rows = append(rows, domain.TeacherRow{
			StudentEmail: sub.StudentEmail,
			DisplayName:  name,
			Level:        sub.Result.Level,
			Description:  sub.Result.Description,
			Score:        sub.Result.CorrectCount,
			Variant:      sub.Result.Variant,
			TakenAt:      sub.Result.TakenAt,
			Tier:         domain.TierFor(sub.Result.CorrectCount),
		})
	}

	// score desc, then most recent, then name
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		if !rows[i].TakenAt.Equal(rows[j].TakenAt) {
			return rows[i].TakenAt.After(rows[j].TakenAt)
		}
		return rows[i].DisplayName < rows[j].DisplayName
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	return domain.TeacherPanel{Rows: rows, Summary: summarize(rows)}, nil
}

func summarize(rows []domain.TeacherRow) domain.TeacherSummary {
	summary := domain.TeacherSummary{
		Count: len(rows),
		PerTier: map[domain.Tier]int{
			domain.TierExcellent: 0,
			domain.TierAverage:   0,
			domain.TierNeedsWork: 0,
		},
	}
	if len(rows) == 0 {
		return summary
	}
	total := 0
	for _, r := range rows {
		total += r.Score
		summary.PerTier[r.Tier]++
	}
	summary.AverageScore = float64(total) / float64(len(rows))
	return summary
}
