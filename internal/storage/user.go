package storage

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User — учётная запись. Уникальность username обеспечивает индекс в Mongo,
// а не чтение-перезапись файла, как было раньше.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
