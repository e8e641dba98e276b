// internal/app/features/authapi/logout.go
package authapi

import (
	"context"
	"net/http"

	"github.com/drafthub/drafthub/internal/app/system/authz"
	"github.com/drafthub/drafthub/internal/app/system/httpapi"
	"github.com/drafthub/drafthub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleLogout clears the auth cookies and discards the stored refresh
// token, so the presented refresh cookie can never be replayed.
//
// Route: POST /auth/logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if _, userID, ok := authz.UserCtx(r); ok {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()
		if err := h.Users.SetRefreshToken(ctx, userID, ""); err != nil {
			// The cookies are cleared regardless; log and continue.
			h.Log.Warn("logout: could not clear stored refresh token",
				zap.String("user_id", userID.Hex()), zap.Error(err))
		}
	}

	h.Auth.ClearAuthCookies(w)
	httpapi.Respond(w, http.StatusOK, nil, "logged out")
}
