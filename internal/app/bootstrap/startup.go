// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	assignmentstore "github.com/dalemusser/scholarhub/internal/app/store/assignments"
	manuscriptstore "github.com/dalemusser/scholarhub/internal/app/store/manuscripts"
	userstore "github.com/dalemusser/scholarhub/internal/app/store/users"
	"github.com/dalemusser/scholarhub/internal/app/system/mailer"
	"github.com/dalemusser/scholarhub/internal/app/system/tasks"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// taskRunner drives background jobs for the lifetime of the process.
// Started here, stopped in Shutdown.
var taskRunner *tasks.Runner

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// ScholarHub promotes the configured editor-in-chief account and starts
// the background job runner.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.EditorInChiefEmail != "" {
		if err := ensureEditorInChief(ctx, deps, appCfg.EditorInChiefEmail, logger); err != nil {
			return err
		}
	}

	db := deps.ScholarHubMongoDatabase
	taskRunner = tasks.NewRunner(logger,
		tasks.OverdueReminderJob(
			assignmentstore.New(db),
			manuscriptstore.New(db),
			userstore.New(db),
			newMailer(appCfg, logger),
			appCfg.SiteName,
			logger,
		),
	)
	taskRunner.Start()

	return nil
}

// ensureEditorInChief grants the editor-in-chief role to the account with
// the configured email. A missing account is not an error: the role is
// applied on a later startup once the account has registered.
func ensureEditorInChief(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	users := userstore.New(deps.ScholarHubMongoDatabase)

	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.Warn("editor-in-chief account not found, skipping promotion",
				zap.String("email", email))
			return nil
		}
		return err
	}

	if user.Roles.EditorInChief {
		return nil
	}

	roles := user.Roles
	roles.Editor = true
	roles.EditorInChief = true
	if _, err := users.UpdateRoles(ctx, user.ID, roles); err != nil {
		return err
	}

	logger.Info("promoted account to editor-in-chief",
		zap.String("user_id", user.ID.Hex()),
		zap.String("email", email))
	return nil
}

// newMailer builds the SMTP mailer from app config. An empty SMTP host
// yields a mailer that logs instead of sending.
func newMailer(appCfg AppConfig, logger *zap.Logger) *mailer.Mailer {
	return mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		Username: appCfg.MailSMTPUser,
		Password: appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)
}
