// internal/domain/models/chatroom.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatRoom is a message channel, optionally backing a group. Group rooms
// mirror the group's member list at creation time and are private.
type ChatRoom struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name      string               `bson:"name" json:"name"`
	GroupID   *primitive.ObjectID  `bson:"group_id,omitempty" json:"groupId,omitempty"`
	MemberIDs []primitive.ObjectID `bson:"member_ids" json:"memberIds"`
	IsPrivate bool                 `bson:"is_private" json:"isPrivate"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// HasMember reports whether the user belongs to the room.
func (c *ChatRoom) HasMember(userID primitive.ObjectID) bool {
	for _, id := range c.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
