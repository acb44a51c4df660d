package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"react-golang/internal/storage"
)

type OrderProvider interface {
	GetWorkOrders(ctx context.Context) ([]*storage.WorkOrder, error)
	GetWorkOrdersByOsasto(ctx context.Context, osasto int) ([]*storage.WorkOrder, error)
}

// GetWorkOrders отдаёт все заказы цеха.
func GetWorkOrders(log *slog.Logger, orders OrderProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.orders.GetWorkOrders"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := orders.GetWorkOrders(ctx)
		if err != nil {
			log.Error("failed to fetch work orders", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, list)
	}
}

// GetWorkOrdersByOsasto отдаёт заказы одного отдела, код — в пути.
func GetWorkOrdersByOsasto(log *slog.Logger, orders OrderProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.orders.GetWorkOrdersByOsasto"

		osasto, err := strconv.Atoi(chi.URLParam(r, "code"))
		if err != nil {
			log.Error("invalid osasto code", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid osasto code", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := orders.GetWorkOrdersByOsasto(ctx, osasto)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Osasto not found", http.StatusNotFound)
				return
			}
			log.Error("failed to fetch osasto orders", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, list)
	}
}
