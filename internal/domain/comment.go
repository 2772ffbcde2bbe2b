package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment document in the comments collection. Sender
// name and avatar are denormalized at write time so feeds render without a
// user lookup.
type Comment struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	PostID       primitive.ObjectID   `bson:"postId" json:"postId"`
	SenderID     primitive.ObjectID   `bson:"senderId" json:"senderId"`
	SenderName   string               `bson:"senderName" json:"senderName"`
	SenderAvatar string               `bson:"senderAvatar,omitempty" json:"senderAvatar,omitempty"`
	Content      string               `bson:"content" json:"content"`
	Images       []string             `bson:"images,omitempty" json:"images,omitempty"`
	Likes        []primitive.ObjectID `bson:"likes" json:"likes"`
	LikesCount   int                  `bson:"likesCount" json:"likesCount"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}
