package save

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"react-golang/internal/service/efficiency"
	"react-golang/internal/storage"
)

type SummaryBuilder interface {
	BuildOrUpdate(ctx context.Context, weeklyHours float64) (*storage.EfficiencySummary, error)
	Archive(ctx context.Context) (name string, created bool, err error)
}

type BuildRequest struct {
	WeeklyHours float64 `json:"viikon_tyotunnit"`
}

type ArchiveResponse struct {
	SummaryName string `json:"summary_name"`
	Created     bool   `json:"created"`
}

// BuildEfficiency создаёт или перезаписывает живой свод недели с заданными
// недельными часами.
func BuildEfficiency(log *slog.Logger, summaries SummaryBuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.efficiency.BuildEfficiency"

		var req BuildRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid json", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		summary, err := summaries.BuildOrUpdate(ctx, req.WeeklyHours)
		if err != nil {
			switch {
			case errors.Is(err, efficiency.ErrNegativeHours):
				http.Error(w, "viikon_tyotunnit must be non-negative", http.StatusBadRequest)
			case errors.Is(err, storage.ErrNotFound):
				http.Error(w, "No orders for efficiency departments", http.StatusNotFound)
			default:
				log.Error("failed to build summary", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, r, summary)
	}
}

// SaveEfficiency архивирует живой свод текущей недели.
func SaveEfficiency(log *slog.Logger, summaries SummaryBuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.efficiency.SaveEfficiency"

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		name, created, err := summaries.Archive(ctx)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "No summary for the current week", http.StatusNotFound)
				return
			}
			log.Error("failed to archive summary", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, ArchiveResponse{SummaryName: name, Created: created})
	}
}
