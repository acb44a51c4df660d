package save

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"react-golang/internal/service/planning"
	"react-golang/internal/storage"
)

type PlanWriter interface {
	AddOrders(ctx context.Context, weekYear string, orderIDs []string) (int, error)
}

type Request struct {
	WeekYear string   `json:"vko_year"`
	OrderIDs []string `json:"order_ids"`
}

type Response struct {
	Status string `json:"status"`
	Added  int    `json:"added"`
}

// AddWeeklyData добавляет снапшоты заказов в план недели.
func AddWeeklyData(log *slog.Logger, plans PlanWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.planning.AddWeeklyData"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid json", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		added, err := plans.AddOrders(ctx, req.WeekYear, req.OrderIDs)
		if err != nil {
			switch {
			case errors.Is(err, planning.ErrBadOrderID):
				http.Error(w, "Invalid order id in order_ids", http.StatusBadRequest)
			case errors.Is(err, storage.ErrNotFound):
				http.Error(w, "No matching orders found", http.StatusNotFound)
			default:
				log.Error("failed to add weekly data", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, r, Response{Status: "added", Added: added})
	}
}
