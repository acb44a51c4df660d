package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"react-golang/internal/storage"
)

func (s *Storage) CreateUser(ctx context.Context, user *storage.User) error {
	const op = "storage.mongodb.CreateUser"

	_, err := s.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return storage.ErrDuplicateUsername
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*storage.User, error) {
	const op = "storage.mongodb.GetUserByUsername"

	var user storage.User
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}
