package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"react-golang/internal/storage"
)

type SummaryRefresher interface {
	Refresh(ctx context.Context) (*storage.EfficiencySummary, error)
}

// GetEfficiency пересчитывает живой свод текущей недели и отдаёт его.
func GetEfficiency(log *slog.Logger, efficiency SummaryRefresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.efficiency.GetEfficiency"

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		summary, err := efficiency.Refresh(ctx)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrNotFound):
				http.Error(w, "No summary for the current week", http.StatusNotFound)
			case errors.Is(err, storage.ErrWeeklyHoursNotSet):
				http.Error(w, "Weekly hours are not set for the current week", http.StatusBadRequest)
			default:
				log.Error("failed to refresh summary", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, r, summary)
	}
}
