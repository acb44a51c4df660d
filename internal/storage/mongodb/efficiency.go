package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"react-golang/internal/storage"
)

func (s *Storage) GetSummaryByName(ctx context.Context, name string) (*storage.EfficiencySummary, error) {
	const op = "storage.mongodb.GetSummaryByName"

	var summary storage.EfficiencySummary
	err := s.efficiency.FindOne(ctx, bson.M{"summary_name": name}).Decode(&summary)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &summary, nil
}

// UpsertSummary перезаписывает живой недельный свод (ключ — summary_name).
func (s *Storage) UpsertSummary(ctx context.Context, summary *storage.EfficiencySummary) error {
	const op = "storage.mongodb.UpsertSummary"

	filter := bson.M{"summary_name": summary.SummaryName}

	_, err := s.efficiency.UpdateOne(ctx, filter, bson.M{"$set": summary}, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) InsertSummary(ctx context.Context, summary *storage.EfficiencySummary) error {
	const op = "storage.mongodb.InsertSummary"

	if _, err := s.efficiency.InsertOne(ctx, summary); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) UpdateSummaryByName(ctx context.Context, name string, summary *storage.EfficiencySummary) error {
	const op = "storage.mongodb.UpdateSummaryByName"

	res, err := s.efficiency.UpdateOne(ctx, bson.M{"summary_name": name}, bson.M{"$set": summary})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// SetSummaryItemStatus меняет Status одной позиции внутри свода.
// Возвращает false, если документ нашёлся, но значение уже такое же.
func (s *Storage) SetSummaryItemStatus(ctx context.Context, summaryID primitive.ObjectID, itemID, status string) (bool, error) {
	const op = "storage.mongodb.SetSummaryItemStatus"

	filter := bson.M{"_id": summaryID, "items.order_id": itemID}
	update := bson.M{"$set": bson.M{"items.$.status": status}}

	res, err := s.efficiency.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return false, storage.ErrNotFound
	}

	return res.ModifiedCount > 0, nil
}
