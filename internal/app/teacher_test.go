package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"level-assessment-service/internal/domain"
	"level-assessment-service/internal/infra/memory"
)

func TestTeacherViewRanksAndAnnotates(t *testing.T) {
	teacher := domain.NewUser("teacher@school.test", "teacher", "Ms T")
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	remote := &mockRemote{}
	remote.On("FetchResultsForTeacher", mock.Anything, teacher).Return([]domain.StudentResult{
		{StudentEmail: "cai@school.test", DisplayName: "Cai", Result: domain.Result{CorrectCount: 4, TakenAt: base}},
		{StudentEmail: "ana@school.test", DisplayName: "Ana", Result: domain.Result{CorrectCount: 9, TakenAt: base}},
		{StudentEmail: "ben@school.test", Result: domain.Result{CorrectCount: 5, TakenAt: base}},
		{StudentEmail: "ana@school.test", DisplayName: "Ana", Result: domain.Result{CorrectCount: 5, TakenAt: base.Add(time.Hour)}},
	}, nil)

	agg := NewTeacherAggregator(remote, StaticIdentity{User: &teacher})
	panel, err := agg.Render(context.Background())
	require.NoError(t, err)
	assert.Empty(t, panel.Error)
	require.Len(t, panel.Rows, 4)

	assert.Equal(t, 9, panel.Rows[0].Score)
	assert.Equal(t, domain.TierExcellent, panel.Rows[0].Tier)
	assert.Equal(t, "Ana", panel.Rows[1].DisplayName, "newer of equal scores first")
	assert.Equal(t, domain.TierAverage, panel.Rows[1].Tier)
	assert.Equal(t, "ben@school.test", panel.Rows[2].DisplayName, "email stands in for missing name")
	assert.Equal(t, domain.TierNeedsWork, panel.Rows[3].Tier)
	for i, row := range panel.Rows {
		assert.Equal(t, i+1, row.Rank)
	}

	assert.Equal(t, 4, panel.Summary.Count)
	assert.InDelta(t, 5.75, panel.Summary.AverageScore, 0.001)
	assert.Equal(t, 2, panel.Summary.PerTier[domain.TierAverage])
}

func TestTeacherViewFetchErrorShowsPanelWithoutLocalData(t *testing.T) {
	teacher := domain.NewUser("teacher@school.test", "teacher", "")
	identity := StaticIdentity{User: &teacher}
	remote := &mockRemote{}
	remote.On("SaveResult", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	remote.On("FetchResultsForTeacher", mock.Anything, teacher).Return(nil, errors.New("permission denied for table assessment_results"))

	// a result cached on the teacher's own device must never appear
	store := NewResultStore(memory.NewKVStore(), remote, identity, &stubNotifier{}, ResultStoreOptions{})
	require.NoError(t, store.Save(context.Background(), sampleResult(1, 10)))
	store.Flush()

	panel, err := NewTeacherAggregator(remote, identity).Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, NoticeTeacherFetchFailed, panel.Error)
	assert.Empty(t, panel.Rows)
	assert.Equal(t, 0, panel.Summary.Count)
}

func TestTeacherViewRequiresTeacherRole(t *testing.T) {
	student := domain.NewUser("ana@school.test", "student", "")
	remote := &mockRemote{}
	_, err := NewTeacherAggregator(remote, StaticIdentity{User: &student}).Render(context.Background())
	assert.ErrorIs(t, err, domain.ErrTeacherOnly)

	_, err = NewTeacherAggregator(remote, StaticIdentity{}).Render(context.Background())
	assert.ErrorIs(t, err, domain.ErrTeacherOnly)
	remote.AssertNotCalled(t, "FetchResultsForTeacher", mock.Anything, mock.Anything)
}
