package save

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

type OrderDuplicator interface {
	DuplicateWorkOrder(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error)
}

type Request struct {
	ID string `json:"id"`
}

type Response struct {
	Status string `json:"status"`
	NewID  string `json:"new_id,omitempty"`
}

// DuplicateWorkOrder копирует существующий заказ в новую строку.
func DuplicateWorkOrder(log *slog.Logger, orders OrderDuplicator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.orders.DuplicateWorkOrder"

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

		newID, err := orders.DuplicateWorkOrder(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Order not found", http.StatusNotFound)
				return
			}
			log.Error("failed to duplicate order", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{Status: "created", NewID: newID.Hex()})
	}
}
