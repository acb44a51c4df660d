package delete

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

type OrderRemover interface {
	DeleteWorkOrder(ctx context.Context, id primitive.ObjectID) error
	EmptyWorkOrder(ctx context.Context, id primitive.ObjectID) error
}

type Request struct {
	ID string `json:"id"`
}

type Response struct {
	Status string `json:"status"`
}

// DeleteWorkOrder удаляет строку заказа целиком.
func DeleteWorkOrder(log *slog.Logger, orders OrderRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.orders.DeleteWorkOrder"

		id, ok := decodeID(w, r, log, op)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := orders.DeleteWorkOrder(ctx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Order not found", http.StatusNotFound)
				return
			}
			log.Error("failed to delete order", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{Status: "deleted"})
	}
}

// EmptyWorkOrder чистит журнал задач и посекционные счётчики заказа.
func EmptyWorkOrder(log *slog.Logger, orders OrderRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.orders.EmptyWorkOrder"

		id, ok := decodeID(w, r, log, op)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := orders.EmptyWorkOrder(ctx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Order not found", http.StatusNotFound)
				return
			}
			log.Error("failed to empty order", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{Status: "emptied"})
	}
}

func decodeID(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string) (primitive.ObjectID, bool) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("invalid json", slog.String("op", op), slog.String("error", err.Error()))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return primitive.NilObjectID, false
	}

	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return primitive.NilObjectID, false
	}

	return id, true
}
