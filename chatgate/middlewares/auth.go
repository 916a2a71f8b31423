// chatgate/middlewares/auth.go
package middlewares

import (
	"context"
	"net/http"
	"strings"

	"chatgate/chatgate/auth"
	"chatgate/chatgate/services/metrics"
	"chatgate/chatgate/types"
	httputils "chatgate/chatgate/utils/http"
	"chatgate/chatgate/utils/logging"

	"go.uber.org/zap"
)

type contextKey string

const UserKey contextKey = "user"

// BearerAuth rejects requests without a valid "Authorization: Bearer" token
// and stores the token's user in the request context.
func BearerAuth(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				metrics.ChatRequestsTotal.WithLabelValues("unauthorized").Inc()
				httputils.RespondError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			user, err := verifier.Verify(r.Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				logging.AppLogger.Info("bearer token rejected", zap.Error(err))
				metrics.ChatRequestsTotal.WithLabelValues("unauthorized").Inc()
				httputils.RespondError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UserFromContext(ctx context.Context) (types.User, bool) {
	user, ok := ctx.Value(UserKey).(types.User)
	return user, ok
}
