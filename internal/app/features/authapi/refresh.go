// internal/app/features/authapi/refresh.go
package authapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/drafthub/drafthub/internal/app/system/apperr"
	"github.com/drafthub/drafthub/internal/app/system/auth"
	"github.com/drafthub/drafthub/internal/app/system/httpapi"
	"github.com/drafthub/drafthub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleRefresh rotates the token pair. The presented refresh cookie must
// carry a valid signature AND match the token stored on the user document;
// a stale or replayed token fails the equality check and is rejected.
//
// Route: POST /auth/refresh
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(auth.RefreshCookie)
	if err != nil || cookie.Value == "" {
		h.Errs.WriteError(w, r, apperr.New(apperr.Authentication, "refresh token required"))
		return
	}

	userIDHex, err := h.Auth.VerifyRefreshToken(cookie.Value)
	if err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Authentication, "invalid refresh token"))
		return
	}
	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Authentication, "invalid refresh token"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Errs.WriteError(w, r, apperr.New(apperr.Authentication, "invalid refresh token"))
			return
		}
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not look up user", err))
		return
	}

	if user.RefreshToken != cookie.Value {
		h.Errs.WriteError(w, r, apperr.New(apperr.Authentication, "refresh token expired or already used"))
		return
	}

	access, err := h.Auth.IssueAccessToken(user.ID.Hex(), user.Email)
	if err != nil {
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not issue token", err))
		return
	}
	refresh, err := h.Auth.IssueRefreshToken(user.ID.Hex())
	if err != nil {
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not issue token", err))
		return
	}

	if err := h.Users.SetRefreshToken(ctx, user.ID, refresh); err != nil {
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not persist session", err))
		return
	}

	h.Auth.SetAuthCookies(w, access, refresh)
	httpapi.Respond(w, http.StatusOK, nil, "tokens refreshed")
}
