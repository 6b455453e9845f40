package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/scholarhub/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UserFetcher loads a user record by ID. The token carries only the user's
// identity; the role snapshot is fetched fresh on every request so role
// changes and deleted accounts take effect immediately.
type UserFetcher interface {
	FetchByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Manager issues and verifies bearer tokens and resolves them to actors.
type Manager struct {
	secret  []byte
	ttl     time.Duration
	fetcher UserFetcher
	log     *zap.Logger
}

var errBadToken = errors.New("invalid or expired token")

// NewManager constructs a token Manager. secret must be non-empty.
func NewManager(secret string, ttl time.Duration, logger *zap.Logger) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("token signing secret must not be empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl, log: logger}, nil
}

// SetUserFetcher wires the identity store lookup used by LoadTokenUser.
func (m *Manager) SetUserFetcher(f UserFetcher) {
	m.fetcher = f
}

// IssueToken mints a signed token for the user.
func (m *Manager) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.Hex(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// verifyToken parses and validates a token string, returning the user ID.
func (m *Manager) verifyToken(tokenString string) (primitive.ObjectID, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return primitive.NilObjectID, errBadToken
	}
	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		// Malformed subject in a validly-signed token indicates corruption;
		// fail closed.
		return primitive.NilObjectID, errBadToken
	}
	return id, nil
}
