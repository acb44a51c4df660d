package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"react-golang/internal/storage"
)

type RoutingUpdater interface {
	UpdateRouting(ctx context.Context, id primitive.ObjectID, osasto, jononumero, quantity int) error
}

type Request struct {
	ID         string `json:"id"`
	Osasto     int    `json:"osasto"`
	Jononumero int    `json:"jononumero"`
	Quantity   int    `json:"quantity"`
}

type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// UpdateRouting переносит заказ в другой отдел/очередь и правит количество.
func UpdateRouting(log *slog.Logger, orders RoutingUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.orders.UpdateRouting"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid json", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		id, err := primitive.ObjectIDFromHex(req.ID)
		if err != nil {
			http.Error(w, "Invalid order id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := orders.UpdateRouting(ctx, id, req.Osasto, req.Jononumero, req.Quantity); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Order not found", http.StatusNotFound)
				return
			}
			log.Error("failed to update routing", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{Status: "updated"})
	}
}
