package storage

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EfficiencySummary — недельный свод эффективности. "Живой" документ на
// неделю один (summary_name = <prefix>_Week<N>); архив — отдельный документ
// с именем <prefix>_<week>/<year>_saved.
type EfficiencySummary struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SummaryName      string             `bson:"summary_name" json:"summary_name"`
	WeeklyHours      float64            `bson:"viikon_tyotunnit" json:"viikon_tyotunnit"`
	EfficiencyNow    *float64           `bson:"efficiency_now" json:"efficiency_now"`
	EfficiencyTarget *float64           `bson:"efficiency_target" json:"efficiency_target"`
	TotalKplStd      float64            `bson:"total_kpl_std" json:"total_kpl_std"`
	TotalKplTarget   float64            `bson:"total_kpl_target" json:"total_kpl_target"`
	Items            []SummaryItem      `bson:"items" json:"items"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
	SavedAt          *time.Time         `bson:"saved_at,omitempty" json:"saved_at,omitempty"`
}

// SummaryItem — снапшот заказа на момент пересчёта, не живая ссылка.
// Status выставляется вручную со стороны фронта и переживает пересчёты.
type SummaryItem struct {
	OrderID         string `bson:"order_id" json:"order_id"`
	ItemNumber      string `bson:"item_number,omitempty" json:"item_number,omitempty"`
	ReferenceNumber string `bson:"reference_number,omitempty" json:"reference_number,omitempty"`
	SalesOrder      string `bson:"sales_order,omitempty" json:"sales_order,omitempty"`
	Osasto          int    `bson:"osasto" json:"osasto"`
	Jononumero      int    `bson:"jononumero,omitempty" json:"jononumero,omitempty"`
	Quantity        Float  `bson:"quantity" json:"quantity"`
	Standardiaika   Float  `bson:"standardiaika,omitempty" json:"standardiaika,omitempty"`
	TotalMade       Float  `bson:"total_made,omitempty" json:"total_made,omitempty"`
	KplStd          Float  `bson:"kpl_std,omitempty" json:"kpl_std,omitempty"`
	KplStdTarget    Float  `bson:"kpl_std_target,omitempty" json:"kpl_std_target,omitempty"`
	Status          string `bson:"status,omitempty" json:"status,omitempty"`
}
