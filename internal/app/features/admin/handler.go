// internal/app/features/admin/handler.go
package admin

import (
	apierrors "github.com/dalemusser/scholarhub/internal/app/features/errors"
	assignmentstore "github.com/dalemusser/scholarhub/internal/app/store/assignments"
	manuscriptstore "github.com/dalemusser/scholarhub/internal/app/store/manuscripts"
	userstore "github.com/dalemusser/scholarhub/internal/app/store/users"
	"github.com/dalemusser/scholarhub/internal/app/system/mailer"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the editor-in-chief endpoints: the dashboard, reviewer
// assignment, assignment cancellation, and user role management.
type Handler struct {
	DB          *mongo.Database
	Users       *userstore.Store
	Manuscripts *manuscriptstore.Store
	Assignments *assignmentstore.Store
	Mailer      *mailer.Mailer
	SiteName    string
	Log         *zap.Logger
	ErrLog      *apierrors.ErrorLogger
	Expose      bool
}

// NewHandler constructs an admin Handler bound to the given Mongo
// database, mailer, and logger.
func NewHandler(db *mongo.Database, mail *mailer.Mailer, siteName string, logger *zap.Logger, exposeErrors bool) *Handler {
	return &Handler{
		DB:          db,
		Users:       userstore.New(db),
		Manuscripts: manuscriptstore.New(db),
		Assignments: assignmentstore.New(db),
		Mailer:      mail,
		SiteName:    siteName,
		Log:         logger,
		ErrLog:      apierrors.NewErrorLogger(logger),
		Expose:      exposeErrors,
	}
}
