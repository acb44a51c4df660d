package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"react-golang/internal/storage"
)

type PlanConfigUpdater interface {
	UpdateConfig(ctx context.Context, weekYear string, ompelijat, tyopaiviaViikko *int, totalOmpeluTunnit *float64) error
}

type Request struct {
	WeekYear          string   `json:"vko_year"`
	Ompelijat         *int     `json:"ompelijat"`
	TyopaiviaViikko   *int     `json:"tyopaiviaViikko"`
	TotalOmpeluTunnit *float64 `json:"totalOmpeluTunnit"`
}

type Response struct {
	Status string `json:"status"`
}

// UpdateOmpelu правит ручные параметры плана недели; отсутствующие в теле
// поля не трогаются.
func UpdateOmpelu(log *slog.Logger, plans PlanConfigUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.planning.UpdateOmpelu"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid json", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		err := plans.UpdateConfig(ctx, req.WeekYear, req.Ompelijat, req.TyopaiviaViikko, req.TotalOmpeluTunnit)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "No planning for this week", http.StatusNotFound)
				return
			}
			log.Error("failed to update planning config", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, Response{Status: "updated"})
	}
}
