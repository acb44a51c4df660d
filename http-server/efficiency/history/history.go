package history

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"react-golang/internal/storage"
)

type HistoryProvider interface {
	History(ctx context.Context, years, weeks []int) ([]*storage.EfficiencySummary, error)
}

type Request struct {
	Years []int `json:"years"`
	Weeks []int `json:"weeks"`
}

// FetchHistory отдаёт архивные своды по всем парам год×неделя; пары без
// архива в ответ не попадают.
func FetchHistory(log *slog.Logger, summaries HistoryProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.efficiency.FetchHistory"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid json", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if len(req.Years) == 0 || len(req.Weeks) == 0 {
			http.Error(w, "Fields 'years' and 'weeks' are required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		found, err := summaries.History(ctx, req.Years, req.Weeks)
		if err != nil {
			log.Error("failed to fetch history", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, found)
	}
}
