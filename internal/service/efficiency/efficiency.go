package efficiency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"react-golang/internal/config"
	"react-golang/internal/service/rules"
	"react-golang/internal/storage"
)

var (
	ErrNegativeHours = errors.New("viikon_tyotunnit must be non-negative")
	ErrUnknownStatus = errors.New("unknown status value")
)

type EfficiencyStorage interface {
	GetWorkOrdersByOsastot(ctx context.Context, osastot []int) ([]*storage.WorkOrder, error)
	SetStdHours(ctx context.Context, id primitive.ObjectID, kplStd, kplStdTarget *float64) error
	GetSummaryByName(ctx context.Context, name string) (*storage.EfficiencySummary, error)
	UpsertSummary(ctx context.Context, summary *storage.EfficiencySummary) error
	InsertSummary(ctx context.Context, summary *storage.EfficiencySummary) error
	UpdateSummaryByName(ctx context.Context, name string, summary *storage.EfficiencySummary) error
	SetSummaryItemStatus(ctx context.Context, summaryID primitive.ObjectID, itemID, status string) (bool, error)
}

// Service считает недельную эффективность по отделам: строит живой свод
// текущей недели, пересчитывает его по запросу и складывает архивные
// копии с именем вида <prefix>_<week>/<year>_saved.
type Service struct {
	log           *slog.Logger
	storage       EfficiencyStorage
	osastot       []int
	terminal      map[string]bool
	prefix        string
	cutoffWeekday int
	cutoffMinutes int
	loc           *time.Location
	now           func() time.Time
}

func New(log *slog.Logger, efficiencyStorage EfficiencyStorage, cfg config.Factory, loc *time.Location) (*Service, error) {
	cutoffMinutes, err := rules.MinutesFromClock(cfg.CutoffTime)
	if err != nil {
		return nil, fmt.Errorf("service.efficiency.New: cutoff_time: %w", err)
	}

	terminal := make(map[string]bool, len(cfg.TerminalSections))
	for _, s := range cfg.TerminalSections {
		terminal[s] = true
	}

	return &Service{
		log:           log,
		storage:       efficiencyStorage,
		osastot:       cfg.EfficiencyOsastot,
		terminal:      terminal,
		prefix:        cfg.SummaryPrefix,
		cutoffWeekday: cfg.CutoffWeekday,
		cutoffMinutes: cutoffMinutes,
		loc:           loc,
		now:           time.Now,
	}, nil
}

// BuildOrUpdate создаёт либо перезаписывает живой свод недели создания
// (с учётом пятничного перехода) с заданными недельными часами.
func (s *Service) BuildOrUpdate(ctx context.Context, weeklyHours float64) (*storage.EfficiencySummary, error) {
	const op = "service.efficiency.BuildOrUpdate"

	if weeklyHours < 0 {
		return nil, ErrNegativeHours
	}

	week, _ := creationWeek(s.now().In(s.loc), s.cutoffWeekday, s.cutoffMinutes)
	name := liveSummaryName(s.prefix, week)

	existing, err := s.storage.GetSummaryByName(ctx, name)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.rebuild(ctx, name, weeklyHours, existing)
}

// Refresh пересчитывает уже существующий свод текущей календарной недели
// на его же недельных часах. Часы не заданы — пересчитывать не на чем.
func (s *Service) Refresh(ctx context.Context) (*storage.EfficiencySummary, error) {
	const op = "service.efficiency.Refresh"

	week, _ := currentWeek(s.now().In(s.loc))
	name := liveSummaryName(s.prefix, week)

	existing, err := s.storage.GetSummaryByName(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if existing.WeeklyHours <= 0 {
		return nil, storage.ErrWeeklyHoursNotSet
	}

	return s.rebuild(ctx, name, existing.WeeklyHours, existing)
}

// rebuild собирает позиции свода заново по заказам отделов. Статус позиции
// выставляется вручную и переживает пересчёт; считаются только производные
// часы и итоги.
func (s *Service) rebuild(ctx context.Context, name string, weeklyHours float64, existing *storage.EfficiencySummary) (*storage.EfficiencySummary, error) {
	const op = "service.efficiency.rebuild"

	orders, err := s.storage.GetWorkOrdersByOsastot(ctx, s.osastot)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(orders) == 0 {
		return nil, storage.ErrNotFound
	}

	savedStatus := map[string]string{}
	if existing != nil {
		for _, item := range existing.Items {
			if item.Status != "" {
				savedStatus[item.OrderID] = item.Status
			}
		}
	}

	summary := &storage.EfficiencySummary{
		SummaryName: name,
		WeeklyHours: weeklyHours,
		UpdatedAt:   s.now().In(s.loc),
	}

	for _, order := range orders {
		item, kplStd, kplStdTarget := s.buildItem(order, savedStatus)
		summary.Items = append(summary.Items, item)
		summary.TotalKplStd += float64(item.KplStd)
		summary.TotalKplTarget += float64(item.KplStdTarget)

		// Производные часы дублируются на сам заказ; несосчитанная цифра
		// остаётся nil и не затирает уже записанное значение. Сбой записи
		// по одному заказу свод не валит.
		if err := s.storage.SetStdHours(ctx, order.ID, kplStd, kplStdTarget); err != nil {
			s.log.Error("failed to persist std hours",
				slog.String("order_id", order.ID.Hex()),
				slog.String("error", err.Error()),
			)
		}
	}

	summary.TotalKplStd = rules.Round2(summary.TotalKplStd)
	summary.TotalKplTarget = rules.Round2(summary.TotalKplTarget)

	if weeklyHours > 0 {
		now := rules.Round2(summary.TotalKplStd / weeklyHours)
		target := rules.Round2(summary.TotalKplTarget / weeklyHours)
		summary.EfficiencyNow = &now
		summary.EfficiencyTarget = &target
	}

	if err := s.storage.UpsertSummary(ctx, summary); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return summary, nil
}

// buildItem собирает позицию свода. Производные часы считаются только при
// обоих ненулевых операндах; несосчитанные возвращаются как nil.
func (s *Service) buildItem(order *storage.WorkOrder, savedStatus map[string]string) (storage.SummaryItem, *float64, *float64) {
	totalMade := order.TotalMade
	if !totalMade.Valid() || totalMade == 0 {
		sum := 0.0
		for section, progress := range order.Sections {
			if s.terminal[section] && progress.TotalMade.Valid() {
				sum += float64(progress.TotalMade)
			}
		}
		totalMade = storage.Float(rules.Round2(sum))
	}

	item := storage.SummaryItem{
		OrderID:         order.ID.Hex(),
		ItemNumber:      order.ItemNumber,
		ReferenceNumber: order.ReferenceNumber,
		SalesOrder:      order.SalesOrder,
		Osasto:          order.Osasto,
		Jononumero:      order.Jononumero,
		Quantity:        order.Quantity,
		Standardiaika:   order.Standardiaika,
		TotalMade:       totalMade,
	}

	var kplStd, kplStdTarget *float64

	std := float64(order.Standardiaika)
	if order.Standardiaika.Valid() && std > 0 {
		if totalMade.Valid() && totalMade != 0 {
			v := rules.Round2(float64(totalMade) * std)
			item.KplStd = storage.Float(v)
			kplStd = &v
		}
		if order.Quantity.Valid() && order.Quantity != 0 {
			v := rules.Round2(float64(order.Quantity) * std)
			item.KplStdTarget = storage.Float(v)
			kplStdTarget = &v
		}
	}

	if saved, ok := savedStatus[item.OrderID]; ok {
		item.Status = saved
	} else if totalMade != 0 {
		item.Status = rules.ResolveStatus(float64(totalMade), float64(order.Quantity))
	}

	return item, kplStd, kplStdTarget
}

// SetItemStatus меняет ручной статус одной позиции свода.
func (s *Service) SetItemStatus(ctx context.Context, summaryID primitive.ObjectID, itemID, status string) (bool, error) {
	const op = "service.efficiency.SetItemStatus"

	switch status {
	case rules.StatusStarted, rules.StatusDone, rules.StatusOver:
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	modified, err := s.storage.SetSummaryItemStatus(ctx, summaryID, itemID, status)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, storage.ErrNotFound
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return modified, nil
}

// Archive снимает копию живого свода текущей недели под архивным именем.
// Повторный вызов на той же неделе перезаписывает архив (created=false).
func (s *Service) Archive(ctx context.Context) (name string, created bool, err error) {
	const op = "service.efficiency.Archive"

	now := s.now().In(s.loc)
	week, year := currentWeek(now)

	live, err := s.storage.GetSummaryByName(ctx, liveSummaryName(s.prefix, week))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", false, storage.ErrNotFound
		}
		return "", false, fmt.Errorf("%s: %w", op, err)
	}

	name = archivedSummaryName(s.prefix, week, year)

	created = true
	if _, err := s.storage.GetSummaryByName(ctx, name); err == nil {
		created = false
	} else if !errors.Is(err, storage.ErrNotFound) {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}

	archived := *live
	archived.ID = primitive.NilObjectID
	archived.SummaryName = name
	archived.SavedAt = &now

	if created {
		err = s.storage.InsertSummary(ctx, &archived)
	} else {
		err = s.storage.UpdateSummaryByName(ctx, name, &archived)
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}

	return name, created, nil
}

// History собирает архивные своды по декартову произведению запрошенных
// годов и недель. Пары без архива просто пропускаются.
func (s *Service) History(ctx context.Context, years, weeks []int) ([]*storage.EfficiencySummary, error) {
	const op = "service.efficiency.History"

	found := make([]*storage.EfficiencySummary, len(years)*len(weeks))

	g, gctx := errgroup.WithContext(ctx)
	for yi, year := range years {
		for wi, week := range weeks {
			idx := yi*len(weeks) + wi
			year, week := year, week
			g.Go(func() error {
				summary, err := s.storage.GetSummaryByName(gctx, archivedSummaryName(s.prefix, week, year))
				if errors.Is(err, storage.ErrNotFound) {
					return nil
				}
				if err != nil {
					return fmt.Errorf("week %d/%d: %w", week, year, err)
				}
				found[idx] = summary
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summaries := make([]*storage.EfficiencySummary, 0, len(found))
	for _, sum := range found {
		if sum != nil {
			summaries = append(summaries, sum)
		}
	}

	return summaries, nil
}
