package auth

import (
	"net/http"

	"github.com/drafthub/drafthub/internal/app/system/apperr"
	"github.com/drafthub/drafthub/internal/app/system/httpapi"
)

// RequireSignedIn ensures there is a user in context (set by LoadTokenUser).
// Anonymous requests get a 401 error envelope; no redirect surface exists in
// this API.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		httpapi.RespondError(w, apperr.New(apperr.Authentication, "authentication required"))
	})
}
