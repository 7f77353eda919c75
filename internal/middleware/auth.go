package middleware

import (
	"net/http"
	"strings"
	"taskify/internal/auth"
	"taskify/internal/logger"

	"go.uber.org/zap"
)

type TokenParser interface {
	Parse(token string) (auth.Session, error)
}

// Authenticate отклоняет запрос без валидного Bearer токена до вызова обработчика
func Authenticate(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				writeError(w, r, http.StatusUnauthorized, "UNAUTHENTICATED", "требуется токен авторизации")
				return
			}

			session, err := parser.Parse(strings.TrimSpace(token))
			if err != nil {
				logger.Warn("Auth: отклонён токен",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Error(err))
				writeError(w, r, http.StatusUnauthorized, "UNAUTHENTICATED", "токен недействителен или истёк")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
		})
	}
}
