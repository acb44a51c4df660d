package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	authmw "react-golang/internal/middleware/auth"
	"react-golang/internal/service/auth"
)

type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, rawToken string) error
}

type Request struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Response struct {
	Token  string `json:"token,omitempty"`
	Status string `json:"status"`
}

// Login выдаёт токен по паре логин/пароль. Неизвестный логин и неверный
// пароль неразличимы в ответе.
func Login(log *slog.Logger, users Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.users.Login"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid json", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		token, err := users.Login(ctx, req.Username, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				http.Error(w, "Invalid username or password", http.StatusUnauthorized)
				return
			}
			log.Error("login failed", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{Token: token, Status: "ok"})
	}
}

// Logout отзывает предъявленный токен до конца его срока жизни.
func Logout(log *slog.Logger, users Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.users.Logout"

		token := authmw.BearerToken(r)
		if token == "" {
			http.Error(w, "Missing bearer token", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := users.Logout(ctx, token); err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}
			log.Error("logout failed", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{Status: "logged_out"})
	}
}
