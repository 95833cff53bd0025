package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AppUser struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"` // bcrypt hash
	Photo     string             `json:"photo,omitempty" bson:"photo,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"createdAt"`
}
