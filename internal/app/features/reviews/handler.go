// internal/app/features/reviews/handler.go
package reviews

import (
	apierrors "github.com/dalemusser/scholarhub/internal/app/features/errors"
	assignmentstore "github.com/dalemusser/scholarhub/internal/app/store/assignments"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the reviewer-facing assignment endpoints.
type Handler struct {
	DB          *mongo.Database
	Assignments *assignmentstore.Store
	Log         *zap.Logger
	ErrLog      *apierrors.ErrorLogger
	Expose      bool
}

// NewHandler constructs a reviews Handler bound to the given Mongo
// database and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger, exposeErrors bool) *Handler {
	return &Handler{
		DB:          db,
		Assignments: assignmentstore.New(db),
		Log:         logger,
		ErrLog:      apierrors.NewErrorLogger(logger),
		Expose:      exposeErrors,
	}
}
