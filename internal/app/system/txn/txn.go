// Package txn wraps multi-document MongoDB transactions with a fallback
// for deployments that cannot run them.
//
// Transactions require a replica set or mongos. Standalone mongod (common
// in dev and small installs) rejects them, so WithTransaction detects that
// case and lets the caller run a non-transactional fallback instead. The
// workflow invariants that matter under concurrency are carried by unique
// indexes either way; the transaction only widens the both-or-neither
// window for multi-document writes.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction runs fn inside a Mongo session transaction. If the
// deployment does not support transactions it runs fallback instead.
// fallback must provide its own both-or-neither behavior (typically a
// compensating write on partial failure).
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(ctx context.Context) error, fallback func(ctx context.Context) error) error {
	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			return fallback(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		return fallback(ctx)
	}
	return err
}

// IsNotSupported reports whether err indicates the deployment cannot run
// multi-document transactions (standalone server, old wire version).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case 20, 51, 263: // IllegalOperation, NoSuchTransaction variants
			return true
		}
		return false
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "transaction") && strings.Contains(msg, "replica set") {
		return true
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	return false
}
