// internal/domain/models/message.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message types.
const (
	MessageTypeText   = "text"
	MessageTypeSystem = "system"
)

// Message is one persisted chat message. Queried by (room_id, created_at).
type Message struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RoomID   primitive.ObjectID `bson:"room_id" json:"roomId"`
	SenderID primitive.ObjectID `bson:"sender_id" json:"senderId"`
	Content  string             `bson:"content" json:"content"`
	Type     string             `bson:"type" json:"type"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
