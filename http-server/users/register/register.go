package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"react-golang/internal/service/auth"
	"react-golang/internal/storage"
)

type UserCreator interface {
	Register(ctx context.Context, username, password string) error
}

type Request struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Response struct {
	Status string `json:"status"`
}

// Register создаёт учётную запись; имя пользователя уникально.
func Register(log *slog.Logger, users UserCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.users.Register"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid json", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Username == "" {
			http.Error(w, "Field 'username' is required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := users.Register(ctx, req.Username, req.Password); err != nil {
			switch {
			case errors.Is(err, auth.ErrWeakPassword):
				http.Error(w, "Password is too short", http.StatusBadRequest)
			case errors.Is(err, storage.ErrDuplicateUsername):
				http.Error(w, "Username already taken", http.StatusBadRequest)
			default:
				log.Error("registration failed", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{Status: "created"})
	}
}
