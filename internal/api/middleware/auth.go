package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ChargingService/internal/api/handlers"
	"github.com/m04kA/SMC-ChargingService/internal/service/auth"
)

const (
	msgMissingToken = "authorization token is required"
	msgInvalidToken = "invalid or expired token"
)

// Auth проверяет заголовок Authorization: Bearer <token>
// и кладёт ID пользователя и сам токен в контекст запроса
func Auth(verifier TokenVerifier, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			userID, err := verifier.Verify(r.Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrInternal) {
					logger.Error("%s %s - Token verification failed: %v", r.Method, r.URL.Path, err)
					handlers.RespondInternalError(w)
					return
				}
				logger.Warn("%s %s - Rejected token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := WithToken(WithUserID(r.Context(), userID), token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
