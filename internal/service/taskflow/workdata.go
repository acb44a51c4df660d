package taskflow

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"react-golang/internal/service/rules"
	"react-golang/internal/storage"
)

// WorkdataStorage — чтения для отчётных выборок журнала.
type WorkdataStorage interface {
	GetWorkOrder(ctx context.Context, id primitive.ObjectID) (*storage.WorkOrder, error)
	GetWorkOrders(ctx context.Context) ([]*storage.WorkOrder, error)
	GetWorkOrdersByWorker(ctx context.Context, workerName string) ([]*storage.WorkOrder, error)
}

// Workdata строит отчётные срезы по журналу задач.
type Workdata struct {
	storage WorkdataStorage
}

func NewWorkdata(workdataStorage WorkdataStorage) *Workdata {
	return &Workdata{storage: workdataStorage}
}

// UserTaskRow — одна запись журнала работника вместе с шапкой заказа.
type UserTaskRow struct {
	OrderID         string                             `json:"id"`
	Jononumero      int                                `json:"jononumero"`
	ItemNumber      string                             `json:"item_number,omitempty"`
	ReferenceNumber string                             `json:"reference_number,omitempty"`
	SalesOrder      string                             `json:"sales_order,omitempty"`
	Quantity        storage.Float                      `json:"quantity"`
	Osasto          int                                `json:"osasto"`
	Sections        map[string]storage.SectionProgress `json:"sections,omitempty"`
	Task            storage.TaskRecord                 `json:"task"`
}

// UserTasks — все записи журнала одного работника по всем заказам.
func (w *Workdata) UserTasks(ctx context.Context, workerName string) ([]UserTaskRow, error) {
	const op = "service.taskflow.UserTasks"

	orders, err := w.storage.GetWorkOrdersByWorker(ctx, workerName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var rows []UserTaskRow
	for _, order := range orders {
		for _, task := range order.Tasks {
			if task.WorkerName != workerName {
				continue
			}
			rows = append(rows, UserTaskRow{
				OrderID:         order.ID.Hex(),
				Jononumero:      order.Jononumero,
				ItemNumber:      order.ItemNumber,
				ReferenceNumber: order.ReferenceNumber,
				SalesOrder:      order.SalesOrder,
				Quantity:        order.Quantity,
				Osasto:          order.Osasto,
				Sections:        order.Sections,
				Task:            task,
			})
		}
	}

	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}

	return rows, nil
}

// History — записи журнала заказа по одной секции.
func (w *Workdata) History(ctx context.Context, id primitive.ObjectID, section string) ([]storage.TaskRecord, error) {
	const op = "service.taskflow.History"

	order, err := w.storage.GetWorkOrder(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var tasks []storage.TaskRecord
	for _, task := range order.Tasks {
		if task.Section == section {
			tasks = append(tasks, task)
		}
	}
	if len(tasks) == 0 {
		return nil, storage.ErrNotFound
	}

	return tasks, nil
}

// WorkHoursRow — суммарное время работы по заказу и секции.
type WorkHoursRow struct {
	OrderID         string               `json:"object_id"`
	ItemNumber      string               `json:"item_number,omitempty"`
	ReferenceNumber string               `json:"reference_number,omitempty"`
	SalesOrder      string               `json:"sales_order,omitempty"`
	Osasto          int                  `json:"osasto"`
	Section         string               `json:"section"`
	TotalWorkHours  string               `json:"total_work_hours"`
	TotalMade       storage.Float        `json:"total_made,omitempty"`
	Tasks           []storage.TaskRecord `json:"tasks,omitempty"`
}

// WorkHours агрегирует минуты из total_time по заказам и секциям;
// sectionFilter пустой — все секции. Нечитаемые значения просто
// пропускаются, партия не прерывается.
func (w *Workdata) WorkHours(ctx context.Context, sectionFilter string) ([]WorkHoursRow, error) {
	const op = "service.taskflow.WorkHours"

	orders, err := w.storage.GetWorkOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var rows []WorkHoursRow
	for _, order := range orders {
		sectionMinutes := map[string]int{}
		for _, task := range order.Tasks {
			if task.Section == "" || task.TotalTime == "" {
				continue
			}
			minutes, err := rules.MinutesFromClock(task.TotalTime)
			if err != nil {
				continue
			}
			sectionMinutes[task.Section] += minutes
		}

		for section, minutes := range sectionMinutes {
			if sectionFilter != "" && section != sectionFilter {
				continue
			}
			rows = append(rows, WorkHoursRow{
				OrderID:         order.ID.Hex(),
				ItemNumber:      order.ItemNumber,
				ReferenceNumber: order.ReferenceNumber,
				SalesOrder:      order.SalesOrder,
				Osasto:          order.Osasto,
				Section:         section,
				TotalWorkHours:  rules.ClockFromMinutes(minutes),
				TotalMade:       order.TotalMade,
				Tasks:           order.Tasks,
			})
		}
	}

	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}

	return rows, nil
}
