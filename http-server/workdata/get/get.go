package get

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"react-golang/internal/service/taskflow"
	"react-golang/internal/storage"
)

type WorkdataProvider interface {
	UserTasks(ctx context.Context, workerName string) ([]taskflow.UserTaskRow, error)
	History(ctx context.Context, id primitive.ObjectID, section string) ([]storage.TaskRecord, error)
	WorkHours(ctx context.Context, sectionFilter string) ([]taskflow.WorkHoursRow, error)
}

type UserWorksRequest struct {
	WorkerName string `json:"workerName"`
}

type HistoryRequest struct {
	ID      string `json:"id"`
	Section string `json:"section"`
}

type WorkHoursRequest struct {
	Section string `json:"section"`
}

// FetchUserWorks отдаёт журнал одного работника по всем заказам.
func FetchUserWorks(log *slog.Logger, workdata WorkdataProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workdata.FetchUserWorks"

		var req UserWorksRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid json", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.WorkerName == "" {
			http.Error(w, "Field 'workerName' is required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rows, err := workdata.UserTasks(ctx, req.WorkerName)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "No tasks found for worker", http.StatusNotFound)
				return
			}
			log.Error("failed to fetch user works", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, rows)
	}
}

// FetchHistory отдаёт записи журнала заказа по одной секции.
func FetchHistory(log *slog.Logger, workdata WorkdataProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workdata.FetchHistory"

		var req HistoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid json", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.ID == "" || req.Section == "" {
			http.Error(w, "Fields 'id' and 'section' are required", http.StatusBadRequest)
			return
		}

		id, err := primitive.ObjectIDFromHex(req.ID)
		if err != nil {
			http.Error(w, "Invalid order id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		tasks, err := workdata.History(ctx, id, req.Section)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "No history for this section", http.StatusNotFound)
				return
			}
			log.Error("failed to fetch history", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, tasks)
	}
}

// WorkHours отдаёт суммарное время работы по заказам и секциям;
// section в теле сужает выборку до одной секции.
func WorkHours(log *slog.Logger, workdata WorkdataProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.workdata.WorkHours"

		// Тело опционально: пустое — все секции
		var req WorkHoursRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			log.Error("invalid json", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rows, err := workdata.WorkHours(ctx, req.Section)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "No work hours recorded", http.StatusNotFound)
				return
			}
			log.Error("failed to fetch work hours", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, rows)
	}
}
