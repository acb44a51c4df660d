package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/render"
)

type ctxKey string

const usernameKey ctxKey = "username"

// Authenticator валидирует токен и возвращает имя пользователя.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (string, error)
}

// JWT пускает дальше только запросы с действующим Bearer-токеном;
// имя пользователя кладётся в контекст запроса.
func JWT(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				requireAuth(w, r)
				return
			}

			username, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				requireAuth(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), usernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken вынимает токен из заголовка Authorization.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}

	return strings.TrimSpace(header[len("Bearer "):])
}

// Username — имя пользователя из контекста; пустая строка вне middleware.
func Username(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}

func requireAuth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, map[string]string{"error": "Unauthorized"})
}
