package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a post document in the posts collection.
//
// Likes holds the ids of users who liked the post; LikesCount is kept equal
// to len(Likes) by updating both in the same store operation. CommentsCount
// mirrors the number of comments referencing this post and is maintained by
// the comment write paths.
type Post struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	SenderID      primitive.ObjectID   `bson:"senderId" json:"senderId"`
	SenderName    string               `bson:"senderName" json:"senderName"`
	SenderAvatar  string               `bson:"senderAvatar,omitempty" json:"senderAvatar,omitempty"`
	Content       string               `bson:"content" json:"content"`
	Images        []string             `bson:"images,omitempty" json:"images,omitempty"`
	Likes         []primitive.ObjectID `bson:"likes" json:"likes"`
	LikesCount    int                  `bson:"likesCount" json:"likesCount"`
	CommentsCount int                  `bson:"commentsCount" json:"commentsCount"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}
