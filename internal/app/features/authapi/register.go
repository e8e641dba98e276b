// internal/app/features/authapi/register.go
package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	userstore "github.com/drafthub/drafthub/internal/app/store/users"
	"github.com/drafthub/drafthub/internal/app/system/apperr"
	"github.com/drafthub/drafthub/internal/app/system/httpapi"
	"github.com/drafthub/drafthub/internal/app/system/inputval"
	"github.com/drafthub/drafthub/internal/app/system/normalize"
	"github.com/drafthub/drafthub/internal/app/system/timeouts"
	"github.com/drafthub/drafthub/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates a new account.
//
// Route: POST /auth/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	req.FullName = normalize.Name(req.FullName)
	req.Email = normalize.Email(req.Email)

	if !inputval.IsValidName(req.FullName) {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "full name is required"))
		return
	}
	if !inputval.IsValidEmail(req.Email) {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "a valid email is required"))
		return
	}
	if !inputval.IsValidPassword(req.Password) {
		h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "password must be at least 8 characters"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not hash password", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			h.Errs.WriteError(w, r, apperr.New(apperr.Validation, "a user with this email already exists"))
			return
		}
		h.Errs.WriteError(w, r, apperr.Wrap(apperr.Internal, "could not create user", err))
		return
	}

	httpapi.Respond(w, http.StatusCreated, userResponse{
		ID:       user.ID.Hex(),
		FullName: user.FullName,
		Email:    user.Email,
	}, "user registered")
}
