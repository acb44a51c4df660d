package taskflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"react-golang/internal/config"
	"react-golang/internal/service/rules"
	"react-golang/internal/storage"
)

var (
	ErrUnknownSection   = errors.New("unknown section")
	ErrMissingPhase     = errors.New("phase is required")
	ErrNegativeQuantity = errors.New("kpl_done must be non-negative")
)

type TaskStorage interface {
	GetWorkOrder(ctx context.Context, id primitive.ObjectID) (*storage.WorkOrder, error)
	AppendTasks(ctx context.Context, id primitive.ObjectID, section, status string, tasks []storage.TaskRecord) error
	CloseGroupTasks(ctx context.Context, id primitive.ObjectID, groupID string, tasks []storage.TaskRecord, sections map[string]storage.SectionProgress) error
	ReplaceTasks(ctx context.Context, id primitive.ObjectID, tasks []storage.TaskRecord) error
	SetSectionProgress(ctx context.Context, id primitive.ObjectID, section string, progress storage.SectionProgress) error
	SetTotalMade(ctx context.Context, id primitive.ObjectID, totalMade storage.Float) error
}

// Service ведёт журнал задач заказа: групповой старт, групповое закрытие
// с раскладкой количества, ручные правки и посекционные счётчики.
type Service struct {
	storage  TaskStorage
	sections map[string]bool
	terminal map[string]bool
	loc      *time.Location
	now      func() time.Time
}

func New(taskStorage TaskStorage, cfg config.Factory, loc *time.Location) *Service {
	sections := make(map[string]bool, len(cfg.Sections))
	for _, s := range cfg.Sections {
		sections[s] = true
	}
	terminal := make(map[string]bool, len(cfg.TerminalSections))
	for _, s := range cfg.TerminalSections {
		terminal[s] = true
	}

	return &Service{
		storage:  taskStorage,
		sections: sections,
		terminal: terminal,
		loc:      loc,
		now:      time.Now,
	}
}

// StartGroup создаёт по открытой записи на каждого работника с общим
// group_id и единым временем старта, секция переводится в "Aloitettu".
func (s *Service) StartGroup(ctx context.Context, id primitive.ObjectID, section, phase string, workerNames []string) (string, error) {
	const op = "service.taskflow.StartGroup"

	if len(workerNames) == 0 {
		return "", rules.ErrEmptyGroup
	}
	if phase == "" {
		return "", ErrMissingPhase
	}
	if !s.sections[section] {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}

	groupID := uuid.NewString()
	start := s.now().In(s.loc)

	tasks := make([]storage.TaskRecord, 0, len(workerNames))
	for _, worker := range workerNames {
		tasks = append(tasks, storage.TaskRecord{
			TaskID:     uuid.NewString(),
			GroupID:    groupID,
			WorkerName: worker,
			Section:    section,
			Phase:      phase,
			Start:      start,
		})
	}

	if err := s.storage.AppendTasks(ctx, id, section, rules.StatusStarted, tasks); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return groupID, nil
}

// EndResult — итог закрытия группы; Section-поля заполнены, только если
// секция терминальная и статус заказа пересчитывался.
type EndResult struct {
	Section   string
	TotalMade float64
	Status    string
	Recounted bool
}

// EndGroup закрывает все открытые записи группы: каждой проставляется
// длительность и доля от kplDone, для терминальной секции пересчитывается
// суммарная выработка и статус. Политика гонок — побеждает первый
// закрывший; проигравший получает storage.ErrNoOpenTasks.
func (s *Service) EndGroup(ctx context.Context, id primitive.ObjectID, groupID string, kplDone float64, comment string) (*EndResult, error) {
	const op = "service.taskflow.EndGroup"

	if kplDone < 0 {
		return nil, ErrNegativeQuantity
	}

	order, err := s.storage.GetWorkOrder(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var open []int
	for i := range order.Tasks {
		if order.Tasks[i].GroupID == groupID && order.Tasks[i].Open() {
			open = append(open, i)
		}
	}
	if len(open) == 0 {
		return nil, storage.ErrNoOpenTasks
	}

	shares, err := rules.SplitQuantity(kplDone, len(open))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	end := s.now().In(s.loc)
	section := order.Tasks[open[0]].Section

	for k, i := range open {
		task := &order.Tasks[i]
		endCopy := end
		task.End = &endCopy
		task.TotalTime = rules.FormatDuration(task.Start, end)
		task.KplDone = storage.Float(shares[k])
		task.Comment = comment
	}

	result := &EndResult{Section: section}
	sections := map[string]storage.SectionProgress{}

	if s.terminal[section] {
		totalMade := 0.0
		for i := range order.Tasks {
			if order.Tasks[i].Section == section && order.Tasks[i].KplDone.Valid() {
				totalMade += float64(order.Tasks[i].KplDone)
			}
		}
		totalMade = rules.Round2(totalMade)

		status := rules.ResolveStatus(totalMade, float64(order.Quantity))
		sections[section] = storage.SectionProgress{
			TotalMade: storage.Float(totalMade),
			Status:    status,
		}

		result.TotalMade = totalMade
		result.Status = status
		result.Recounted = true
	}

	if err := s.storage.CloseGroupTasks(ctx, id, groupID, order.Tasks, sections); err != nil {
		if errors.Is(err, storage.ErrNoOpenTasks) {
			return nil, storage.ErrNoOpenTasks
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// ModifyTask правит количество и фазу одной записи журнала.
func (s *Service) ModifyTask(ctx context.Context, id primitive.ObjectID, taskID string, newQuantity float64, newPhase string) error {
	const op = "service.taskflow.ModifyTask"

	order, err := s.storage.GetWorkOrder(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	found := false
	for i := range order.Tasks {
		if order.Tasks[i].TaskID == taskID {
			order.Tasks[i].KplDone = storage.Float(newQuantity)
			order.Tasks[i].Phase = newPhase
			found = true
			break
		}
	}
	if !found {
		return storage.ErrNotFound
	}

	if err := s.storage.ReplaceTasks(ctx, id, order.Tasks); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SectionResult — итог ручного пересчёта секции.
type SectionResult struct {
	Section   string
	TotalMade float64
	Status    string
}

// SetSectionTotal выставляет выработку секции вручную и пересчитывает статус.
func (s *Service) SetSectionTotal(ctx context.Context, id primitive.ObjectID, section string, totalMade float64) (*SectionResult, error) {
	const op = "service.taskflow.SetSectionTotal"

	if !s.sections[section] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}

	order, err := s.storage.GetWorkOrder(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	status := rules.ResolveStatus(totalMade, float64(order.Quantity))

	progress := storage.SectionProgress{
		TotalMade: storage.Float(totalMade),
		Status:    status,
	}
	if err := s.storage.SetSectionProgress(ctx, id, section, progress); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &SectionResult{Section: section, TotalMade: totalMade, Status: status}, nil
}

// SetPressTotal выставляет суммарную выработку заказа (пресс).
func (s *Service) SetPressTotal(ctx context.Context, id primitive.ObjectID, totalMade float64) error {
	const op = "service.taskflow.SetPressTotal"

	if err := s.storage.SetTotalMade(ctx, id, storage.Float(totalMade)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
