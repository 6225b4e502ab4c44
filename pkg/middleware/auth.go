package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"moodflix/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sessionToken reads the session cookie, falling back to a Bearer header.
func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(utils.SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// UserExistsFunc reports whether a signed-in user still has an account.
type UserExistsFunc func(ctx context.Context, id uuid.UUID) (bool, error)

// Session resolves the caller. A valid token for an existing user puts the
// user id and owner on the context. Without one, fallbackOwner (when
// non-empty) becomes the owner. Invalid tokens and tokens of deleted users
// never fail the request here; RequireOwner decides that. A nil userExists
// trusts the token alone.
func Session(tokens *utils.TokenManager, userExists UserExistsFunc, fallbackOwner string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if token := sessionToken(r); token != "" {
				claims, err := tokens.Validate(token)
				switch {
				case err == nil:
					userID, _ := claims.UserID()

					if userExists != nil {
						ok, err := userExists(ctx, userID)
						if err != nil {
							logger.Error("Failed to resolve session user",
								zap.String("user_id", userID.String()),
								zap.Error(err),
							)
							utils.ResponseInternalError(w, "Failed to resolve session.")
							return
						}
						if !ok {
							logger.Debug("Ignoring session of unknown user",
								zap.String("user_id", userID.String()),
							)
							break
						}
					}

					ctx = utils.SetUserContext(ctx, userID)
					ctx = utils.SetOwnerContext(ctx, userID.String())
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				case errors.Is(err, utils.ErrInvalidToken):
					logger.Debug("Ignoring invalid session token",
						zap.String("path", r.URL.Path),
						zap.Error(err),
					)
				}
			}

			if fallbackOwner != "" {
				ctx = utils.SetOwnerContext(ctx, fallbackOwner)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOwner rejects requests that Session could not attach an owner to.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetOwnerFromContext(r.Context()); !ok {
			utils.ResponseUnauthorized(w, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
