package end

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

type GroupFinisher interface {
	EndGroup(ctx context.Context, id primitive.ObjectID, groupID string, kplDone float64, comment string) (*taskflow.EndResult, error)
}

type Request struct {
	ID      string  `json:"id"`
	GroupID string  `json:"group_id"`
	KplDone float64 `json:"kpl_done"`
	Comment string  `json:"comment"`
}

type Response struct {
	Status    string  `json:"status"`
	Section   string  `json:"section,omitempty"`
	TotalMade float64 `json:"total_made,omitempty"`
	Recounted bool    `json:"recounted"`
}

// EndTask закрывает групповую задачу: количество раскладывается по
// работникам, терминальная секция пересчитывает статус заказа. Повторное
// закрытие группы ничего не меняет и отвечает 404.
func EndTask(log *slog.Logger, tasks GroupFinisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.tasks.EndTask"

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

		result, err := tasks.EndGroup(ctx, id, req.GroupID, req.KplDone, req.Comment)
		if err != nil {
			switch {
			case errors.Is(err, taskflow.ErrNegativeQuantity):
				http.Error(w, "kpl_done must be non-negative", http.StatusBadRequest)
			case errors.Is(err, storage.ErrNoOpenTasks):
				http.Error(w, "No active tasks found for the provided group_id", http.StatusNotFound)
			case errors.Is(err, storage.ErrNotFound):
				http.Error(w, "Order not found", http.StatusNotFound)
			default:
				log.Error("failed to end task", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		resp := Response{Status: "ended", Section: result.Section, Recounted: result.Recounted}
		if result.Recounted {
			resp.Status = result.Status
			resp.TotalMade = result.TotalMade
		}

		render.JSON(w, r, resp)
	}
}
