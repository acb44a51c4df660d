package start

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"react-golang/internal/service/rules"
	"react-golang/internal/service/taskflow"
	"react-golang/internal/storage"
)

type GroupStarter interface {
	StartGroup(ctx context.Context, id primitive.ObjectID, section, phase string, workerNames []string) (string, error)
}

type Request struct {
	ID          string   `json:"id"`
	Section     string   `json:"section"`
	Phase       string   `json:"phase"`
	WorkerNames []string `json:"workerNames"`
}

type Response struct {
	GroupID string `json:"group_id"`
	Status  string `json:"status"`
}

// StartTask открывает групповую задачу: по записи на каждого работника,
// один group_id на всех.
func StartTask(log *slog.Logger, tasks GroupStarter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.tasks.StartTask"

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

		groupID, err := tasks.StartGroup(ctx, id, req.Section, req.Phase, req.WorkerNames)
		if err != nil {
			switch {
			case errors.Is(err, rules.ErrEmptyGroup):
				http.Error(w, "workerNames must not be empty", http.StatusBadRequest)
			case errors.Is(err, taskflow.ErrMissingPhase):
				http.Error(w, "Field 'phase' is required", http.StatusBadRequest)
			case errors.Is(err, taskflow.ErrUnknownSection):
				http.Error(w, "Unknown section", http.StatusBadRequest)
			case errors.Is(err, storage.ErrNotFound):
				http.Error(w, "Order not found", http.StatusNotFound)
			default:
				log.Error("failed to start task", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, r, Response{GroupID: groupID, Status: rules.StatusStarted})
	}
}
