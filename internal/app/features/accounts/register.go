// internal/app/features/accounts/register.go
package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	apierrors "github.com/dalemusser/scholarhub/internal/app/features/errors"
	userstore "github.com/dalemusser/scholarhub/internal/app/store/users"
	"github.com/dalemusser/scholarhub/internal/app/system/timeouts"
	"github.com/dalemusser/scholarhub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type registerRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Affiliation string `json:"affiliation"`
}

// authResponse is the data payload for successful register and login calls.
type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register handles POST /api/auth/register.
//
// New accounts start with the author role only. Editorial and reviewer
// roles are granted later by the editor-in-chief.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.RenderValidation(w, "Invalid request body.")
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)

	switch {
	case req.FullName == "":
		apierrors.RenderValidation(w, "Full name is required.")
		return
	case req.Email == "" || !strings.Contains(req.Email, "@"):
		apierrors.RenderValidation(w, "A valid email address is required.")
		return
	case len(req.Password) < minPasswordLength:
		apierrors.RenderValidation(w, "Password must be at least 8 characters.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.Log("register: hash password", err)
		apierrors.RenderServerError(w, "Registration failed.", err, h.Expose)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Affiliation:  strings.TrimSpace(req.Affiliation),
		Roles:        models.Roles{Author: true},
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			apierrors.RenderValidation(w, "A user with this email already exists.")
			return
		}
		h.ErrLog.Log("register: create user", err, zap.String("email", req.Email))
		apierrors.RenderServerError(w, "Registration failed.", err, h.Expose)
		return
	}

	token, err := h.Tokens.IssueToken(&user)
	if err != nil {
		h.ErrLog.Log("register: issue token", err, zap.String("user_id", user.ID.Hex()))
		apierrors.RenderServerError(w, "Registration failed.", err, h.Expose)
		return
	}

	h.Log.Info("user registered",
		zap.String("user_id", user.ID.Hex()),
		zap.String("email", user.Email))

	apierrors.RenderCreated(w, "Registration successful.", authResponse{
		Token: token,
		User:  &user,
	})
}
