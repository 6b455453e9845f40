// internal/app/features/accounts/handler.go
package accounts

import (
	apierrors "github.com/dalemusser/scholarhub/internal/app/features/errors"
	userstore "github.com/dalemusser/scholarhub/internal/app/store/users"
	"github.com/dalemusser/scholarhub/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler holds dependencies for the register and login endpoints.
type Handler struct {
	Users  *userstore.Store
	Tokens *auth.Manager
	ErrLog *apierrors.ErrorLogger
	Log    *zap.Logger
	Expose bool
}

// NewHandler constructs an accounts Handler. Expose controls whether 500
// responses carry error detail (dev mode only).
func NewHandler(users *userstore.Store, tokens *auth.Manager, logger *zap.Logger, exposeErrors bool) *Handler {
	return &Handler{
		Users:  users,
		Tokens: tokens,
		ErrLog: apierrors.NewErrorLogger(logger),
		Log:    logger,
		Expose: exposeErrors,
	}
}
