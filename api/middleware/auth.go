package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/angelmondragon/shopfloor/api/responses"
	pkgAuth "github.com/angelmondragon/shopfloor/pkg/auth"
	"github.com/angelmondragon/shopfloor/pkg/auth/session"
	"github.com/angelmondragon/shopfloor/pkg/config"
	pkgerrors "github.com/angelmondragon/shopfloor/pkg/errors"
	"github.com/angelmondragon/shopfloor/pkg/logger"
	"github.com/google/uuid"
)

// AccountChecker reports whether the user behind a token still exists.
type AccountChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// BearerToken extracts the raw token from the Authorization header.
func BearerToken(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	token := raw
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return token, nil
}

// Auth validates a bearer token, requires its session to still be open and
// its user to still exist, then seeds the request context with the caller.
func Auth(cfg config.JWTConfig, verifier session.AccessSessionChecker, accounts AccountChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
			}

			if accounts != nil {
				ok, err := accounts.Exists(r.Context(), claims.UserID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, err)
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "account unavailable"))
					return
				}
			}

			ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID.String())
			ctx = context.WithValue(ctx, ctxUsername, claims.Username)

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":  claims.UserID.String(),
					"username": claims.Username,
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
