package auth

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/scholarhub/internal/app/features/errors"
	"github.com/dalemusser/scholarhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// LoadTokenUser resolves the Authorization bearer token, refetches the
// user's record, and injects an Actor into context. Requests with no
// token, a bad token, or a vanished user simply continue unauthenticated;
// RequireSignedIn decides whether that matters for a given route.
func (m *Manager) LoadTokenUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" || m.fetcher == nil {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := m.verifyToken(raw)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		user, err := m.fetcher.FetchByID(ctx, userID)
		if err != nil {
			// Token is valid but the account is gone; treat as signed out.
			m.log.Debug("token user fetch failed", zap.String("user_id", userID.Hex()), zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		r = withActor(r, &Actor{
			ID:    user.ID,
			Name:  user.FullName,
			Email: user.Email,
			Roles: user.Roles,
		})
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is an actor in context (set by
// LoadTokenUser). API callers get a 401 envelope otherwise.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentActor(r); !ok {
			uierrors.RenderUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
