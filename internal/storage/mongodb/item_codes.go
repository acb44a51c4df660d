package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"react-golang/internal/storage"
)

func (s *Storage) GetItemCodes(ctx context.Context) ([]*storage.ItemCode, error) {
	const op = "storage.mongodb.GetItemCodes"

	cur, err := s.koodit.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var codes []*storage.ItemCode
	for cur.Next(ctx) {
		var code storage.ItemCode
		if err := cur.Decode(&code); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}
		codes = append(codes, &code)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return codes, nil
}
