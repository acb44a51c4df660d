package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"react-golang/internal/storage"
)

func (s *Storage) GetPlanningWeek(ctx context.Context, weekYear string) (*storage.PlanningWeek, error) {
	const op = "storage.mongodb.GetPlanningWeek"

	var week storage.PlanningWeek
	err := s.planning.FindOne(ctx, bson.M{"vko_year": weekYear}).Decode(&week)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := range week.WeeklyData {
		storage.CleanNaN(week.WeeklyData[i].Extra)
	}

	return &week, nil
}

// AppendWeeklyData дописывает снапшоты заказов в план недели;
// при отсутствии документа недели upsert создаёт его.
func (s *Storage) AppendWeeklyData(ctx context.Context, weekYear string, orders []*storage.WorkOrder) error {
	const op = "storage.mongodb.AppendWeeklyData"

	update := bson.M{"$push": bson.M{"weekly_data": bson.M{"$each": orders}}}

	_, err := s.planning.UpdateOne(ctx, bson.M{"vko_year": weekYear}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpdatePlanningConfig пишет ручные параметры недели (швеи, рабочие дни,
// суммарные часы пошива). nil-поля не трогаются.
func (s *Storage) UpdatePlanningConfig(ctx context.Context, weekYear string, ompelijat, tyopaiviaViikko *int, totalOmpeluTunnit *float64) error {
	const op = "storage.mongodb.UpdatePlanningConfig"

	set := bson.M{}
	if ompelijat != nil {
		set["ompelijat"] = *ompelijat
	}
	if tyopaiviaViikko != nil {
		set["tyopaivia_viikko"] = *tyopaiviaViikko
	}
	if totalOmpeluTunnit != nil {
		set["total_ompelu_tunnit"] = *totalOmpeluTunnit
	}
	if len(set) == 0 {
		return nil
	}

	res, err := s.planning.UpdateOne(ctx, bson.M{"vko_year": weekYear}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}

	return nil
}
