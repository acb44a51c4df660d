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

	"react-golang/internal/service/taskflow"
	"react-golang/internal/storage"
)

type TaskEditor interface {
	ModifyTask(ctx context.Context, id primitive.ObjectID, taskID string, newQuantity float64, newPhase string) error
	SetSectionTotal(ctx context.Context, id primitive.ObjectID, section string, totalMade float64) (*taskflow.SectionResult, error)
	SetPressTotal(ctx context.Context, id primitive.ObjectID, totalMade float64) error
}

type ModifyRequest struct {
	ID          string  `json:"id"`
	TaskID      string  `json:"task_id"`
	NewQuantity float64 `json:"new_quantity"`
	NewPhase    string  `json:"new_phase"`
}

type SectionRequest struct {
	ID        string  `json:"id"`
	Section   string  `json:"section"`
	TotalMade float64 `json:"total_made"`
}

type PressRequest struct {
	ID        string  `json:"id"`
	TotalMade float64 `json:"total_made"`
}

type Response struct {
	Status    string  `json:"status"`
	Section   string  `json:"section,omitempty"`
	TotalMade float64 `json:"total_made,omitempty"`
}

// ModifyTask правит количество и фазу одной записи журнала.
func ModifyTask(log *slog.Logger, tasks TaskEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.tasks.ModifyTask"

		var req ModifyRequest
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

		if err := tasks.ModifyTask(ctx, id, req.TaskID, req.NewQuantity, req.NewPhase); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Task not found", http.StatusNotFound)
				return
			}
			log.Error("failed to modify task", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{Status: "updated"})
	}
}

// UpdateSectionTotal выставляет выработку секции вручную; статус заказа
// по этой секции пересчитывается.
func UpdateSectionTotal(log *slog.Logger, tasks TaskEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.tasks.UpdateSectionTotal"

		var req SectionRequest
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

		result, err := tasks.SetSectionTotal(ctx, id, req.Section, req.TotalMade)
		if err != nil {
			switch {
			case errors.Is(err, taskflow.ErrUnknownSection):
				http.Error(w, "Unknown section", http.StatusBadRequest)
			case errors.Is(err, storage.ErrNotFound):
				http.Error(w, "Order not found", http.StatusNotFound)
			default:
				log.Error("failed to update section total", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, r, Response{Status: result.Status, Section: result.Section, TotalMade: result.TotalMade})
	}
}

// UpdatePressTotal выставляет суммарную выработку заказа (пресс).
func UpdatePressTotal(log *slog.Logger, tasks TaskEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.tasks.UpdatePressTotal"

		var req PressRequest
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

		if err := tasks.SetPressTotal(ctx, id, req.TotalMade); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Order not found", http.StatusNotFound)
				return
			}
			log.Error("failed to update press total", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{Status: "updated", TotalMade: req.TotalMade})
	}
}
