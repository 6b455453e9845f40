// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"path/filepath"

	accountsfeature "github.com/dalemusser/scholarhub/internal/app/features/accounts"
	adminfeature "github.com/dalemusser/scholarhub/internal/app/features/admin"
	healthfeature "github.com/dalemusser/scholarhub/internal/app/features/health"
	manuscriptsfeature "github.com/dalemusser/scholarhub/internal/app/features/manuscripts"
	reviewsfeature "github.com/dalemusser/scholarhub/internal/app/features/reviews"
	userstore "github.com/dalemusser/scholarhub/internal/app/store/users"
	"github.com/dalemusser/scholarhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. ScholarHub creates the token manager,
// the file storage backend, and the mailer, then mounts the JSON API
// feature routers: auth, manuscripts, reviews, and admin.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.ScholarHubMongoDatabase

	// 500 bodies carry error detail only outside production.
	expose := coreCfg.Env != "prod"

	tokens, err := auth.NewManager(appCfg.TokenSecret, appCfg.TokenTTL, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	// The UserFetcher makes LoadTokenUser refetch the user record on each
	// request, so role changes take effect immediately rather than at
	// token expiry.
	tokens.SetUserFetcher(userstore.NewFetcher(db))

	fileStore, err := storage.NewLocal(storage.LocalConfig{
		BasePath: appCfg.StorageLocalPath,
		BaseURL:  appCfg.StorageLocalURL,
	})
	if err != nil {
		logger.Error("file storage init failed", zap.Error(err))
		return nil, err
	}

	// Local spill location for manuscript payloads whose primary upload
	// failed; download serves local_ keys from here.
	fallbackStore, err := storage.NewLocal(storage.LocalConfig{
		BasePath: filepath.Join(appCfg.StorageLocalPath, "fallback"),
		BaseURL:  appCfg.StorageLocalURL + "/fallback",
	})
	if err != nil {
		logger.Error("fallback storage init failed", zap.Error(err))
		return nil, err
	}

	mail := newMailer(appCfg, logger)

	r := chi.NewRouter()

	// Global auth middleware: resolves the bearer token and loads the
	// actor into context for all handlers via auth.CurrentActor(r).
	r.Use(tokens.LoadTokenUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.ScholarHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Registration and login
	accountsHandler := accountsfeature.NewHandler(userstore.New(db), tokens, logger, expose)
	r.Mount("/api/auth", accountsfeature.Routes(accountsHandler))

	// Manuscript submission, listing, viewing, file download
	manuscriptsHandler := manuscriptsfeature.NewHandler(db, fileStore, fallbackStore, mail, appCfg.SiteName, logger, expose)
	r.Mount("/api/manuscripts", manuscriptsfeature.Routes(manuscriptsHandler))

	// Reviewer assignment responses
	reviewsHandler := reviewsfeature.NewHandler(db, logger, expose)
	r.Mount("/api/reviews", reviewsfeature.Routes(reviewsHandler))

	// Editor-in-chief surface
	adminHandler := adminfeature.NewHandler(db, mail, appCfg.SiteName, logger, expose)
	r.Mount("/api/admin", adminfeature.Routes(adminHandler))

	return r, nil
}
