package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"react-golang/internal/config"
)

type Storage struct {
	client     *mongo.Client
	orders     *mongo.Collection
	koodit     *mongo.Collection
	efficiency *mongo.Collection
	planning   *mongo.Collection
	users      *mongo.Collection
}

func New(ctx context.Context, cfg config.Mongo) (*Storage, error) {
	const op = "storage.mongodb.New"

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("%s: ping failed: %w", op, err)
	}

	db := client.Database(cfg.Database)

	s := &Storage{
		client:     client,
		orders:     db.Collection(cfg.OrdersCollection),
		koodit:     db.Collection(cfg.KooditCollection),
		efficiency: db.Collection(cfg.EfficiencyCollection),
		planning:   db.Collection(cfg.PlanningCollection),
		users:      db.Collection(cfg.UsersCollection),
	}

	// Уникальность username держит индекс, приложение только ловит дубликат.
	_, err = s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: create username index: %w", op, err)
	}

	return s, nil
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
