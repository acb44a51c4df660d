package storage

import "go.mongodb.org/mongo-driver/bson/primitive"

// PlanningWeek — документ планирования на неделю ("2025-W35").
// WeeklyData — снапшоты заказов, добавленные мастером в план недели.
type PlanningWeek struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WeekYear          string             `bson:"vko_year" json:"vko_year"`
	WeeklyData        []WorkOrder        `bson:"weekly_data" json:"WeeklyData"`
	Ompelijat         *int               `bson:"ompelijat,omitempty" json:"ompelijat,omitempty"`
	TyopaiviaViikko   *int               `bson:"tyopaivia_viikko,omitempty" json:"tyopaiviaViikko,omitempty"`
	TotalOmpeluTunnit *float64           `bson:"total_ompelu_tunnit,omitempty" json:"totalOmpeluTunnit,omitempty"`
}
