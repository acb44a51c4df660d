package storage

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkOrder — одна строка производственного заказа. Динамические поля
// Status<Section>/total_made<Section> из старой схемы заменены на
// закрытую карту Sections.
type WorkOrder struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ItemNumber      string             `bson:"item_number,omitempty" json:"item_number,omitempty"`
	ReferenceNumber string             `bson:"reference_number,omitempty" json:"reference_number,omitempty"`
	SalesOrder      string             `bson:"sales_order,omitempty" json:"sales_order,omitempty"`
	Category        string             `bson:"category,omitempty" json:"category,omitempty"`
	Kategoria       string             `bson:"kategoria,omitempty" json:"kategoria,omitempty"`
	ShipDate        string             `bson:"ship_date,omitempty" json:"ship_date,omitempty"`
	VKO             int                `bson:"vko,omitempty" json:"vko,omitempty"`
	Osasto          int                `bson:"osasto" json:"osasto"`
	Jononumero      int                `bson:"jononumero" json:"jononumero"`
	Quantity        Float              `bson:"quantity" json:"quantity"`
	Standardiaika   Float              `bson:"standardiaika,omitempty" json:"standardiaika,omitempty"`

	// Суммарная выработка по заказу (пресс), отдельно от посекционных счётчиков.
	TotalMade    Float `bson:"total_made,omitempty" json:"total_made,omitempty"`
	KplStd       Float `bson:"kpl_std,omitempty" json:"kpl_std,omitempty"`
	KplStdTarget Float `bson:"kpl_std_target,omitempty" json:"kpl_std_target,omitempty"`

	Sections map[string]SectionProgress `bson:"sections,omitempty" json:"sections,omitempty"`
	Tasks    []TaskRecord               `bson:"tasks,omitempty" json:"tasks,omitempty"`

	// Extra хранит колонки импорта, не вошедшие в типизированную схему.
	Extra map[string]interface{} `bson:",inline" json:"extra,omitempty"`
}

type SectionProgress struct {
	TotalMade Float  `bson:"total_made" json:"total_made"`
	Status    string `bson:"status" json:"status"`
}

// TaskRecord — участие одного работника в одном запуске задачи.
// Запись "открыта", пока нет end_time; после закрытия не изменяется
// (кроме ручной правки количества/фазы через modify_task).
type TaskRecord struct {
	TaskID     string     `bson:"task_id" json:"task_id"`
	GroupID    string     `bson:"group_id" json:"group_id"`
	WorkerName string     `bson:"worker_name" json:"workerName"`
	Section    string     `bson:"section" json:"section"`
	Phase      string     `bson:"phase" json:"phase"`
	Start      time.Time  `bson:"start" json:"start"`
	End        *time.Time `bson:"end_time,omitempty" json:"end_time,omitempty"`
	TotalTime  string     `bson:"total_time,omitempty" json:"total_time,omitempty"`
	KplDone    Float      `bson:"kpl_done,omitempty" json:"kpl_done,omitempty"`
	Comment    string     `bson:"comment,omitempty" json:"comment,omitempty"`
}

// Open — открыта ли запись (группа ещё не завершена).
func (t *TaskRecord) Open() bool {
	return t.End == nil
}
