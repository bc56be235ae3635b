package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/board-admin/internal/server/handlers"
)

// bearerPrefix обязательная схема заголовка Authorization
const bearerPrefix = "Bearer "

// AuthMiddleware создает middleware для проверки JWT access token.
// Пути из exemptPaths (login, refresh, logout) пропускаются без проверки,
// список передается конфигурацией, а не зашивается в маршруты.
// Идентичность в запрос не добавляется: обработчикам, которым нужен
// subject, придется извлечь его из токена самостоятельно.
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig, exemptPaths []string) func(http.Handler) http.Handler {
	exempt := make(map[string]bool, len(exemptPaths))
	for _, path := range exemptPaths {
		exempt[path] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// CORS preflight пропускается всегда
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			if exempt[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				logger.Warn("Missing or malformed Authorization header",
					"method", r.Method, "path", r.URL.Path)
				http.Error(w, "Access Token is missing", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, bearerPrefix)

			if !handlers.ValidateToken(jwtConfig, tokenString) {
				logger.Warn("Invalid access token",
					"method", r.Method, "path", r.URL.Path)
				http.Error(w, "Invalid Access Token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
