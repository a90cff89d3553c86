package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User holds editor credentials. The password is stored only as a bcrypt
// hash; the original value never touches the database or the wire.
type User struct {
	ID           primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	PublicID     string             `json:"public_id" bson:"public_id"`
	Username     string             `json:"username" bson:"username"`
	PasswordHash string             `json:"-" bson:"password_hash"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}
