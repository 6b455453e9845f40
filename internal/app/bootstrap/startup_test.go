package bootstrap

import (
	"testing"

	userstore "github.com/dalemusser/scholarhub/internal/app/store/users"
	"github.com/dalemusser/scholarhub/internal/domain/models"
	"github.com/dalemusser/scholarhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestEnsureEditorInChief_PromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	users := userstore.New(db)
	created, err := users.Create(ctx, models.User{
		FullName:     "Future Chief",
		Email:        "chief@test.com",
		PasswordHash: "hash",
		Roles:        models.Roles{Author: true},
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	deps := DBDeps{ScholarHubMongoDatabase: db}
	if err := ensureEditorInChief(ctx, deps, "chief@test.com", testLogger()); err != nil {
		t.Fatalf("ensureEditorInChief failed: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": created.ID}).Decode(&user); err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if !user.Roles.EditorInChief || !user.Roles.Editor {
		t.Errorf("roles after promotion: %+v, want editor and editor_in_chief set", user.Roles)
	}
	if !user.Roles.Author {
		t.Error("promotion should preserve existing roles")
	}
}

func TestEnsureEditorInChief_MissingAccountIsNotAnError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	deps := DBDeps{ScholarHubMongoDatabase: db}
	if err := ensureEditorInChief(ctx, deps, "nobody@test.com", testLogger()); err != nil {
		t.Fatalf("expected nil for missing account, got %v", err)
	}

	count, err := db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("no account should be created, found %d", count)
	}
}

func TestEnsureEditorInChief_AlreadyPromotedIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	users := userstore.New(db)
	if _, err := users.Create(ctx, models.User{
		FullName:     "Sitting Chief",
		Email:        "sitting@test.com",
		PasswordHash: "hash",
		Roles:        models.Roles{Editor: true, EditorInChief: true},
	}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	deps := DBDeps{ScholarHubMongoDatabase: db}
	if err := ensureEditorInChief(ctx, deps, "sitting@test.com", testLogger()); err != nil {
		t.Fatalf("ensureEditorInChief failed: %v", err)
	}
}
