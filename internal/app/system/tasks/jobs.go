// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	assignmentstore "github.com/dalemusser/scholarhub/internal/app/store/assignments"
	manuscriptstore "github.com/dalemusser/scholarhub/internal/app/store/manuscripts"
	userstore "github.com/dalemusser/scholarhub/internal/app/store/users"
	"github.com/dalemusser/scholarhub/internal/app/system/mailer"
	"go.uber.org/zap"
)

// OverdueReminderJob creates a job that emails reviewers whose pending
// assignments have passed their due date without a response.
func OverdueReminderJob(
	assignStore *assignmentstore.Store,
	msStore *manuscriptstore.Store,
	userStore *userstore.Store,
	mail *mailer.Mailer,
	siteName string,
	logger *zap.Logger,
) Job {
	return Job{
		Name:     "overdue-review-reminder",
		Interval: 1 * time.Hour,
		Run: func(ctx context.Context) error {
			overdue, err := assignStore.ListOverduePending(ctx, time.Now().UTC())
			if err != nil {
				return err
			}

			for _, a := range overdue {
				reviewer, err := userStore.GetByID(ctx, a.ReviewerID)
				if err != nil {
					logger.Warn("skipping overdue reminder, reviewer lookup failed",
						zap.String("assignment_id", a.ID.Hex()),
						zap.Error(err))
					continue
				}

				ms, err := msStore.GetByID(ctx, a.ManuscriptID)
				if err != nil {
					logger.Warn("skipping overdue reminder, manuscript lookup failed",
						zap.String("assignment_id", a.ID.Hex()),
						zap.Error(err))
					continue
				}

				email := mailer.BuildOverdueReminderEmail(mailer.AssignmentEmailData{
					SiteName:   siteName,
					Manuscript: ms,
					DueDate:    a.DueDate,
				})
				email.To = reviewer.Email
				mail.SendAsync(email)
			}

			if len(overdue) > 0 {
				logger.Info("sent overdue review reminders", zap.Int("count", len(overdue)))
			}
			return nil
		},
	}
}
