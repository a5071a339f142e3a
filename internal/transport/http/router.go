package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"level-assessment-service/internal/app"
	"level-assessment-service/internal/domain"
)

// NewRouter wires the REST endpoints and the websocket entry point.
func NewRouter(service *app.AssessmentService, teacher *app.TeacherAggregator, allowedOrigins []string) http.Handler {
	ws := NewWSHandler(service, teacher)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", headerUserEmail, headerUserRole, headerUserName},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ws", ws.ServeWS)

	r.Route("/api", func(api chi.Router) {
		api.Use(identityMiddleware)
		api.Use(middleware.Timeout(30 * time.Second))
		api.Get("/questions/{variant}", questionsHandler(service))
		api.Get("/results", listResultsHandler(service))
		api.Delete("/results/{id}", deleteResultHandler(service))
		api.Post("/level", integrateLevelHandler(service))
		api.Get("/teacher/results", teacherResultsHandler(teacher))
	})
	return r
}

func questionsHandler(service *app.AssessmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questions, err := service.Questions(r.Context(), chi.URLParam(r, "variant"))
		if err != nil {
			writeError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, toQuestionViews(questions))
	}
}

func listResultsHandler(service *app.AssessmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := service.Results().List(r.Context())
		if err != nil {
			writeError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, toResultViews(results))
	}
}

func deleteResultHandler(service *app.AssessmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, errInvalidPayload, nil)
			return
		}
		var notices []string
		confirm := r.URL.Query().Get("confirm") == "true"
		ctx := app.WithNotifier(r.Context(), collectingNotifier{notices: &notices, confirm: confirm})
		if err := service.Results().Delete(ctx, id); err != nil {
			writeError(w, err, notices)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func integrateLevelHandler(service *app.AssessmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload integratePayload
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				writeError(w, errInvalidPayload, nil)
				return
			}
		}
		var notices []string
		ctx := app.WithNotifier(r.Context(), collectingNotifier{notices: &notices})

		desc := domain.Descriptor{Level: payload.Level, Description: payload.Description}
		if desc.Level == "" {
			latest, err := service.Results().LatestDescriptor(ctx)
			if err != nil {
				writeError(w, err, notices)
				return
			}
			desc = latest
		}
		if err := service.Results().IntegrateLevel(ctx, desc.Level, desc.Description); err != nil {
			writeError(w, err, notices)
			return
		}
		writeJSON(w, http.StatusOK, desc)
	}
}

func teacherResultsHandler(teacher *app.TeacherAggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		panel, err := teacher.Render(r.Context())
		if err != nil {
			writeError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, panel)
	}
}

type restError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Notices []string `json:"notices,omitempty"`
}

func writeError(w http.ResponseWriter, err error, notices []string) {
	code, message := describeError(err)
	writeJSON(w, statusFor(err), restError{Code: code, Message: message, Notices: notices})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrTeacherOnly), errors.Is(err, domain.ErrTeacherCannotTakeTest):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrResultNotFound), errors.Is(err, domain.ErrNoResults):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDeleteNotConfirmed):
		return http.StatusPreconditionRequired
	case errors.Is(err, domain.ErrIntegrateFailed):
		return http.StatusBadGateway
	case errors.Is(err, errInvalidPayload), errors.Is(err, domain.ErrInvalidOption):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
