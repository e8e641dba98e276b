// internal/app/features/authapi/account.go
package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	userstore "github.com/drafthub/drafthub/internal/app/store/users"
	"github.com/drafthub/drafthub/internal/app/system/apperr"
	"github.com/drafthub/drafthub/internal/app/system/authz"
	"github.com/drafthub/drafthub/internal/app/system/httpapi"
	"github.com/drafthub/drafthub/internal/app/system/inputval"
	"github.com/drafthub/drafthub/internal/app/system/normalize"
	"github.com/drafthub/drafthub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// ServeMe returns the signed-in user's account.
//
// Route: GET /auth/me
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		h.Errs.WriteError(w, r, apperr.New(apperr.Authentication, "authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Errs.WriteError(w, r, apperr.New(apperr.NotFound, "user not found"))
			return
		}
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not load user", err))
		return
	}

	httpapi.Respond(w, http.StatusOK, userResponse{
		ID:           user.ID.Hex(),
		FullName:     user.FullName,
		Email:        user.Email,
		ProjectRoles: user.ProjectRoles,
	}, "")
}

type updateAccountRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// HandleUpdateAccount updates the signed-in user's name and/or email.
// Empty fields keep their prior values.
//
// Route: PATCH /auth/me
func (h *Handler) HandleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		h.Errs.WriteError(w, r, apperr.New(apperr.Authentication, "authentication required"))
		return
	}

	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	if email := normalize.Email(req.Email); email != "" && !inputval.IsValidEmail(email) {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "a valid email is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.UpdateAccount(ctx, userID, req.FullName, req.Email); err != nil {
		switch {
		case errors.Is(err, userstore.ErrDuplicateEmail):
			h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "a user with this email already exists"))
		case errors.Is(err, mongo.ErrNoDocuments):
			h.Errs.WriteError(w, r, apperr.New(apperr.NotFound, "user not found"))
		default:
			h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not update account", err))
		}
		return
	}

	httpapi.Respond(w, http.StatusOK, nil, "account updated")
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// HandleChangePassword verifies the old password and replaces the hash.
//
// Route: POST /auth/change-password
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		h.Errs.WriteError(w, r, apperr.New(apperr.Authentication, "authentication required"))
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "invalid request body"))
		return
	}
	if !inputval.IsValidPassword(req.NewPassword) {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "password must be at least 8 characters"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Errs.WriteError(w, r, apperr.New(apperr.NotFound, "user not found"))
			return
		}
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not load user", err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "old password is incorrect"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not hash password", err))
		return
	}
	if err := h.Users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not update password", err))
		return
	}

	httpapi.Respond(w, http.StatusOK, nil, "password changed")
}
