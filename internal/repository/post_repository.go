package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/wayfarerhq/wayfarer-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// postRepository implements PostRepository on the posts collection.
type postRepository struct {
	crudRepository[domain.Post]
}

// NewPostRepository creates a new post repository.
func NewPostRepository(coll *mongo.Collection) PostRepository {
	return &postRepository{crudRepository: newCrudRepository[domain.Post](coll)}
}

func (r *postRepository) GetAll(ctx context.Context, senderID *primitive.ObjectID) ([]*domain.Post, error) {
	filter := bson.M{}
	if senderID != nil {
		filter["senderId"] = *senderID
	}
	return r.getAll(ctx, filter)
}

func (r *postRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	return r.getByID(ctx, id)
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}

	id, err := r.insert(ctx, post)
	if err != nil {
		return err
	}
	post.ID = id
	return nil
}

func (r *postRepository) Update(ctx context.Context, id primitive.ObjectID, content string) (*domain.Post, error) {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{
		"content":   content,
		"updatedAt": time.Now(),
	}})
}

func (r *postRepository) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	return r.deleteByID(ctx, id)
}

func (r *postRepository) ToggleLike(ctx context.Context, id, userID primitive.ObjectID) (*domain.Post, error) {
	return toggleLike[domain.Post](ctx, r.coll, id, userID)
}

// IncCommentsCount adjusts the denormalized comment counter. Always paired
// with a comment insert or delete by the comment service.
func (r *postRepository) IncCommentsCount(ctx context.Context, id primitive.ObjectID, delta int) error {
	result, err := r.coll.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"commentsCount": delta}})
	if err != nil {
		return fmt.Errorf("failed to adjust comments count: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("post %s: %w", id.Hex(), ErrNotFound)
	}
	return nil
}
