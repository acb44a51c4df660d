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

	"react-golang/internal/service/efficiency"
	"react-golang/internal/storage"
)

type ItemStatusSetter interface {
	SetItemStatus(ctx context.Context, summaryID primitive.ObjectID, itemID, status string) (bool, error)
}

type Request struct {
	SummaryID string `json:"summaryId"`
	ItemID    string `json:"itemId"`
	Status    string `json:"newStatus"`
}

type Response struct {
	Status   string `json:"status"`
	Modified bool   `json:"modified"`
}

// UpdateItemStatus выставляет ручной статус позиции свода; он переживает
// последующие пересчёты.
func UpdateItemStatus(log *slog.Logger, summaries ItemStatusSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.efficiency.UpdateItemStatus"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid json", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		summaryID, err := primitive.ObjectIDFromHex(req.SummaryID)
		if err != nil {
			http.Error(w, "Invalid summary id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		modified, err := summaries.SetItemStatus(ctx, summaryID, req.ItemID, req.Status)
		if err != nil {
			switch {
			case errors.Is(err, efficiency.ErrUnknownStatus):
				http.Error(w, "Unknown status value", http.StatusBadRequest)
			case errors.Is(err, storage.ErrNotFound):
				http.Error(w, "Summary item not found", http.StatusNotFound)
			default:
				log.Error("failed to update item status", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, r, Response{Status: "updated", Modified: modified})
	}
}
