// internal/app/features/authapi/login.go
package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/drafthub/drafthub/internal/app/system/apperr"
	"github.com/drafthub/drafthub/internal/app/system/httpapi"
	"github.com/drafthub/drafthub/internal/app/system/normalize"
	"github.com/drafthub/drafthub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and sets the access and refresh token
// cookies. The refresh token is persisted on the user document so a
// presented refresh cookie can be matched against the one last issued.
//
// Route: POST /auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	req.Email = normalize.Email(req.Email)
	if req.Email == "" || req.Password == "" {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "email and password are required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Errs.WriteError(w, r, apperr.New(apperr.NotFound, "no account with this email"))
			return
		}
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not look up user", err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Authentication, "incorrect email or password"))
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
	h.Log.Info("user logged in", zap.String("user_id", user.ID.Hex()))

	httpapi.Respond(w, http.StatusOK, userResponse{
		ID:           user.ID.Hex(),
		FullName:     user.FullName,
		Email:        user.Email,
		ProjectRoles: user.ProjectRoles,
	}, "login successful")
}
