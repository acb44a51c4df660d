package planning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"react-golang/internal/storage"
)

var ErrBadOrderID = errors.New("invalid order id")

type PlanningStorage interface {
	GetPlanningWeek(ctx context.Context, weekYear string) (*storage.PlanningWeek, error)
	AppendWeeklyData(ctx context.Context, weekYear string, orders []*storage.WorkOrder) error
	UpdatePlanningConfig(ctx context.Context, weekYear string, ompelijat, tyopaiviaViikko *int, totalOmpeluTunnit *float64) error
	GetWorkOrdersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*storage.WorkOrder, error)
}

// Service ведёт недельные планы пошива: снапшоты заказов в плане недели
// плюс ручные параметры (швеи, рабочие дни, часы).
type Service struct {
	storage PlanningStorage
	loc     *time.Location
	now     func() time.Time
}

func New(planningStorage PlanningStorage, loc *time.Location) *Service {
	return &Service{
		storage: planningStorage,
		loc:     loc,
		now:     time.Now,
	}
}

// DefaultWeekYear — метка текущей ISO-недели, "2025-W35".
func (s *Service) DefaultWeekYear() string {
	year, week := s.now().In(s.loc).ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// Week отдаёт план недели; weekYear пустой — текущая неделя.
func (s *Service) Week(ctx context.Context, weekYear string) (*storage.PlanningWeek, error) {
	const op = "service.planning.Week"

	if weekYear == "" {
		weekYear = s.DefaultWeekYear()
	}

	week, err := s.storage.GetPlanningWeek(ctx, weekYear)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return week, nil
}

// AddOrders добавляет снапшоты заказов в план недели. Заказы, которых уже
// нет в базе, просто не попадают в план; если не нашёлся ни один —
// storage.ErrNotFound.
func (s *Service) AddOrders(ctx context.Context, weekYear string, orderIDs []string) (int, error) {
	const op = "service.planning.AddOrders"

	if weekYear == "" {
		weekYear = s.DefaultWeekYear()
	}

	ids := make([]primitive.ObjectID, 0, len(orderIDs))
	for _, raw := range orderIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrBadOrderID, raw)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return 0, storage.ErrNotFound
	}

	orders, err := s.storage.GetWorkOrdersByIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if len(orders) == 0 {
		return 0, storage.ErrNotFound
	}

	if err := s.storage.AppendWeeklyData(ctx, weekYear, orders); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return len(orders), nil
}

// UpdateConfig правит ручные параметры плана; nil-поля остаются как были.
func (s *Service) UpdateConfig(ctx context.Context, weekYear string, ompelijat, tyopaiviaViikko *int, totalOmpeluTunnit *float64) error {
	const op = "service.planning.UpdateConfig"

	if weekYear == "" {
		weekYear = s.DefaultWeekYear()
	}

	if err := s.storage.UpdatePlanningConfig(ctx, weekYear, ompelijat, tyopaiviaViikko, totalOmpeluTunnit); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
