// internal/app/features/accounts/login.go
package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	apierrors "github.com/dalemusser/scholarhub/internal/app/features/errors"
	"github.com/dalemusser/scholarhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
//
// Unknown email and wrong password return the same 401 so the endpoint
// does not reveal which accounts exist.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.RenderValidation(w, "Invalid request body.")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		apierrors.RenderValidation(w, "Email and password are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierrors.RenderUnauthorized(w)
			return
		}
		h.ErrLog.Log("login: lookup user", err)
		apierrors.RenderServerError(w, "Login failed.", err, h.Expose)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		apierrors.RenderUnauthorized(w)
		return
	}

	token, err := h.Tokens.IssueToken(user)
	if err != nil {
		h.ErrLog.Log("login: issue token", err, zap.String("user_id", user.ID.Hex()))
		apierrors.RenderServerError(w, "Login failed.", err, h.Expose)
		return
	}

	h.Log.Info("user logged in", zap.String("user_id", user.ID.Hex()))

	apierrors.RenderOK(w, "Login successful.", authResponse{
		Token: token,
		User:  user,
	})
}
