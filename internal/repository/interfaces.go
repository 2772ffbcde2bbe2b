package repository

import (
	"context"

	"github.com/wayfarerhq/wayfarer-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines methods for user operations.
//
// PullRefreshToken is the gate for refresh-token rotation: it removes one
// token from the user's stored list in a single atomic update and reports
// whether anything was removed. Concurrent refreshes racing on the same
// token are resolved here — exactly one caller observes true.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	PushRefreshToken(ctx context.Context, userID primitive.ObjectID, token string) error
	PullRefreshToken(ctx context.Context, userID primitive.ObjectID, token string) (bool, error)
}

// PostRepository defines methods for post operations. ToggleLike applies the
// membership flip and the counter adjustment in one store operation.
type PostRepository interface {
	GetAll(ctx context.Context, senderID *primitive.ObjectID) ([]*domain.Post, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error)
	Create(ctx context.Context, post *domain.Post) error
	Update(ctx context.Context, id primitive.ObjectID, content string) (*domain.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.Post, error)
	ToggleLike(ctx context.Context, id, userID primitive.ObjectID) (*domain.Post, error)
	IncCommentsCount(ctx context.Context, id primitive.ObjectID, delta int) error
}

// CommentRepository defines methods for comment operations. Delete variants
// return the removed documents so callers can clean up attached images.
type CommentRepository interface {
	GetAll(ctx context.Context, senderID *primitive.ObjectID) ([]*domain.Comment, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error)
	GetByPostID(ctx context.Context, postID primitive.ObjectID) ([]*domain.Comment, error)
	Create(ctx context.Context, comment *domain.Comment) error
	Update(ctx context.Context, id primitive.ObjectID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error)
	DeleteByPostID(ctx context.Context, postID primitive.ObjectID) ([]*domain.Comment, error)
	ToggleLike(ctx context.Context, id, userID primitive.ObjectID) (*domain.Comment, error)
}

// TripRepository defines methods for saved trip itineraries.
type TripRepository interface {
	Create(ctx context.Context, trip *domain.Trip) error
	GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*domain.Trip, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trip, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*domain.Trip, error)
}
