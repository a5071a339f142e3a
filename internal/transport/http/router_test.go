package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"level-assessment-service/internal/app"
	"level-assessment-service/internal/domain"
)

func TestQuestionsEndpointHidesCorrectIndex(t *testing.T) {
	fx := newFixture()

	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/questions/toefl", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "correctIndex")

	var views []questionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, domain.QuestionsPerTest)
	assert.Equal(t, "Vocabulary", views[0].Section)
}

func TestResultsEndpointsAreScopedToCaller(t *testing.T) {
	fx := newFixture()
	ctx := app.WithUser(context.Background(), domain.NewUser("ana@school.test", "student", "Ana"))
	result := domain.Result{ID: 7, Level: "B1", Description: "Intermediate", CorrectCount: 6,
		Variant: domain.VariantGeneral, TakenAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	require.NoError(t, fx.service.Results().Save(ctx, result))
	fx.service.Results().Flush()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/results", nil)
	req.Header.Set(headerUserEmail, "ana@school.test")
	fx.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var views []resultView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, int64(7), views[0].ID)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/results", nil)
	req.Header.Set(headerUserEmail, "ben@school.test")
	fx.router.ServeHTTP(rec, req)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/results/7", nil)
	req.Header.Set(headerUserEmail, "ana@school.test")
	fx.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/results/7?confirm=true", nil)
	req.Header.Set(headerUserEmail, "ana@school.test")
	fx.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestIntegrateLevelUsesLatestResult(t *testing.T) {
	fx := newFixture()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/level", nil)
	req.Header.Set(headerUserEmail, "ana@school.test")
	fx.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	ctx := app.WithUser(context.Background(), domain.NewUser("ana@school.test", "", ""))
	require.NoError(t, fx.service.Results().Save(ctx, domain.Result{ID: 1, Level: "C1", Description: "Advanced",
		CorrectCount: 10, Variant: domain.VariantGeneral, TakenAt: time.Now().UTC()}))
	fx.service.Results().Flush()

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/level", strings.NewReader(`{}`))
	req.Header.Set(headerUserEmail, "ana@school.test")
	fx.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	level, ok := fx.remote.CurrentLevel("ana@school.test")
	require.True(t, ok)
	assert.Equal(t, "C1", level.Level)
}

func TestTeacherEndpoint(t *testing.T) {
	fx := newFixture()
	ctx := app.WithUser(context.Background(), domain.NewUser("ana@school.test", "student", "Ana"))
	require.NoError(t, fx.service.Results().Save(ctx, domain.Result{ID: 1, Level: "B2", Description: "Upper Intermediate",
		CorrectCount: 8, Variant: domain.VariantGeneral, TakenAt: time.Now().UTC()}))
	fx.service.Results().Flush()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/teacher/results", nil)
	req.Header.Set(headerUserEmail, "ana@school.test")
	fx.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/teacher/results", nil)
	req.Header.Set(headerUserEmail, "teacher@school.test")
	req.Header.Set(headerUserRole, "teacher")
	fx.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var panel domain.TeacherPanel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &panel))
	require.Len(t, panel.Rows, 1)
	assert.Equal(t, domain.TierExcellent, panel.Rows[0].Tier)
	assert.Equal(t, "Ana", panel.Rows[0].DisplayName)
}
