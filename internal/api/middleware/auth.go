package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/vgcman16/CleanMate/internal/api/handlers"
	"github.com/vgcman16/CleanMate/internal/domain"
)

const (
	msgMissingToken  = "отсутствует токен авторизации"
	msgInvalidToken  = "недействительный токен авторизации"
	msgInvalidSecret = "недействительный внутренний токен"

	// InternalTokenHeader заголовок внутренних вызовов
	InternalTokenHeader = "X-Internal-Token"
)

type contextKey string

const userIDKey contextKey = "userID"

// WithUserID кладет uid пользователя в контекст
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID извлекает uid пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// Auth проверяет Bearer токен и кладет uid пользователя в контекст
func Auth(authenticator Authenticator, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				logger.Warn("Auth: missing bearer token: %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			userID, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrAuth) {
					logger.Warn("Auth: token rejected: %s %s: %v", r.Method, r.URL.Path, err)
					handlers.RespondUnauthorized(w, msgInvalidToken)
					return
				}
				logger.Error("Auth: failed to verify token: %v", err)
				handlers.RespondDomainError(w, err, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// InternalToken пропускает только запросы с общим секретом в X-Internal-Token
func InternalToken(secret string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(InternalTokenHeader)
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				logger.Warn("InternalToken: rejected %s %s from %s", r.Method, r.URL.Path, remoteHost(r))
				handlers.RespondUnauthorized(w, msgInvalidSecret)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
