// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

The assignments index is load-bearing: the partial unique index on
(manuscript_id, reviewer_id) over active documents is what enforces the
one-active-assignment-per-pair invariant under concurrent requests. The
duplicate check in request code exists only to produce a friendly error
message; the index is the actual guarantee.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureManuscripts(ctx, db); err != nil {
		problems = append(problems, "manuscripts: "+err.Error())
	}
	if err := ensureAssignments(ctx, db); err != nil {
		problems = append(problems, "assignments: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		name := ""
		if m.Options != nil && m.Options.Name != nil {
			name = *m.Options.Name
		}

		start := time.Now()
		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			// CreateOne is a no-op when an identical index exists; a real
			// conflict (same keys, different options) surfaces here.
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", name),
				zap.Error(err))
			errs = append(errs, coll.Name()+"("+name+"): "+err.Error())
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Email must be unique across all users (stored lowercased).
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		// Role-flag counts for the dashboard.
		{
			Keys:    bson.D{{Key: "roles.reviewer", Value: 1}},
			Options: options.Index().SetName("idx_users_role_reviewer"),
		},
		{
			Keys:    bson.D{{Key: "roles.editor_in_chief", Value: 1}},
			Options: options.Index().SetName("idx_users_role_eic"),
		},
	})
}

func ensureManuscripts(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("manuscripts")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Author listings, newest first.
		{
			Keys:    bson.D{{Key: "authors.user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_ms_author_created"),
		},
		{
			Keys:    bson.D{{Key: "corresponding_author", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_ms_corresponding_created"),
		},
		// Status counts for the dashboard and editor queues.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_ms_status_created"),
		},
	})
}

func ensureAssignments(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("assignments")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Exclusivity invariant: at most one active assignment per
		// (manuscript, reviewer) pair. Partial on active=true so declined,
		// completed, and cancelled assignments do not block reassignment.
		{
			Keys: bson.D{{Key: "manuscript_id", Value: 1}, {Key: "reviewer_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"active": true}).
				SetName("uniq_assign_pair_active"),
		},
		// A reviewer's assignment list, newest first.
		{
			Keys:    bson.D{{Key: "reviewer_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_assign_reviewer_created"),
		},
		// Per-manuscript assignment history.
		{
			Keys:    bson.D{{Key: "manuscript_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_assign_manuscript_created"),
		},
		// Overdue reminder sweep: active pending assignments by due date.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "due_date", Value: 1}},
			Options: options.Index().SetName("idx_assign_status_due"),
		},
	})
}
