package get

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"react-golang/internal/storage"
)

type PlanProvider interface {
	Week(ctx context.Context, weekYear string) (*storage.PlanningWeek, error)
}

type Request struct {
	Year string `json:"year"`
}

// GetPlanning отдаёт план недели; year в теле запроса, по умолчанию текущая.
func GetPlanning(log *slog.Logger, planning PlanProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.planning.GetPlanning"

		// Тело опционально: пустое — текущая неделя
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			log.Error("invalid json", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		week, err := planning.Week(ctx, req.Year)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "No planning for this week", http.StatusNotFound)
				return
			}
			log.Error("failed to fetch planning", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, week)
	}
}
