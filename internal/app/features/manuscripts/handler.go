// internal/app/features/manuscripts/handler.go
package manuscripts

import (
	apierrors "github.com/dalemusser/scholarhub/internal/app/features/errors"
	manuscriptstore "github.com/dalemusser/scholarhub/internal/app/store/manuscripts"
	userstore "github.com/dalemusser/scholarhub/internal/app/store/users"
	"github.com/dalemusser/scholarhub/internal/app/system/mailer"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the author-facing manuscript endpoints (submit, list, view).
//
// It is constructed once at startup in bootstrap, using the shared Mongo
// database handle, file storage, mailer, and logger.
type Handler struct {
	DB          *mongo.Database
	Manuscripts *manuscriptstore.Store
	Users       *userstore.Store
	Storage     storage.Store
	Fallback    *storage.Local
	Mailer      *mailer.Mailer
	SiteName    string
	Log         *zap.Logger
	ErrLog      *apierrors.ErrorLogger
	Expose      bool
}

// NewHandler constructs a manuscripts Handler bound to the given Mongo
// database, file storage, mailer, and logger. The fallback store is a
// local disk spill location that receives manuscript payloads when the
// primary blob backend rejects an upload.
func NewHandler(db *mongo.Database, store storage.Store, fallback *storage.Local, mail *mailer.Mailer, siteName string, logger *zap.Logger, exposeErrors bool) *Handler {
	return &Handler{
		DB:          db,
		Manuscripts: manuscriptstore.New(db),
		Users:       userstore.New(db),
		Storage:     store,
		Fallback:    fallback,
		Mailer:      mail,
		SiteName:    siteName,
		Log:         logger,
		ErrLog:      apierrors.NewErrorLogger(logger),
		Expose:      exposeErrors,
	}
}
