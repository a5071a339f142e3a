package http

import (
	"net/http"

	"level-assessment-service/internal/app"
	"level-assessment-service/internal/domain"
)

// Identity headers set by the auth gateway.
const (
	headerUserEmail = "X-User-Email"
	headerUserRole  = "X-User-Role"
	headerUserName  = "X-User-Name"
)

// identityMiddleware attaches the caller's identity from gateway headers.
// Requests without an email run as anonymous.
func identityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := r.Header.Get(headerUserEmail)
		if email == "" {
			next.ServeHTTP(w, r)
			return
		}
		user := domain.NewUser(email, r.Header.Get(headerUserRole), r.Header.Get(headerUserName))
		next.ServeHTTP(w, r.WithContext(app.WithUser(r.Context(), user)))
	})
}
