package userstore

import (
	"context"

	"github.com/dalemusser/scholarhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fetcher adapts the user store to the auth.UserFetcher interface so the
// token middleware can refresh the actor's role snapshot on each request.
type Fetcher struct {
	store *Store
}

// NewFetcher constructs a Fetcher over the given database.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{store: New(db)}
}

// FetchByID loads the user record for the authenticated token subject.
func (f *Fetcher) FetchByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return f.store.GetByID(ctx, id)
}
