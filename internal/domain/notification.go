package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is an inbox message. Only Read/ReadAt change after creation.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Message   string             `bson:"message" json:"message"`
	Read      bool               `bson:"read" json:"read"`
	ReadAt    *time.Time         `bson:"readAt,omitempty" json:"readAt,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
