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

// commentRepository implements CommentRepository on the comments collection.
type commentRepository struct {
	crudRepository[domain.Comment]
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(coll *mongo.Collection) CommentRepository {
	return &commentRepository{crudRepository: newCrudRepository[domain.Comment](coll)}
}

func (r *commentRepository) GetAll(ctx context.Context, senderID *primitive.ObjectID) ([]*domain.Comment, error) {
	filter := bson.M{}
	if senderID != nil {
		filter["senderId"] = *senderID
	}
	return r.getAll(ctx, filter)
}

func (r *commentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error) {
	return r.getByID(ctx, id)
}

func (r *commentRepository) GetByPostID(ctx context.Context, postID primitive.ObjectID) ([]*domain.Comment, error) {
	return r.getAll(ctx, bson.M{"postId": postID})
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	if comment.Likes == nil {
		comment.Likes = []primitive.ObjectID{}
	}

	id, err := r.insert(ctx, comment)
	if err != nil {
		return err
	}
	comment.ID = id
	return nil
}

func (r *commentRepository) Update(ctx context.Context, id primitive.ObjectID, content string) (*domain.Comment, error) {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{
		"content":   content,
		"updatedAt": time.Now(),
	}})
}

func (r *commentRepository) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error) {
	return r.deleteByID(ctx, id)
}

// DeleteByPostID removes every comment referencing a post and returns the
// removed documents, so the caller can clean up attached images after a
// post-delete cascade.
func (r *commentRepository) DeleteByPostID(ctx context.Context, postID primitive.ObjectID) ([]*domain.Comment, error) {
	comments, err := r.getAll(ctx, bson.M{"postId": postID})
	if err != nil {
		return nil, err
	}

	if _, err := r.coll.DeleteMany(ctx, bson.M{"postId": postID}); err != nil {
		return nil, fmt.Errorf("failed to delete comments for post %s: %w", postID.Hex(), err)
	}

	return comments, nil
}

func (r *commentRepository) ToggleLike(ctx context.Context, id, userID primitive.ObjectID) (*domain.Comment, error) {
	return toggleLike[domain.Comment](ctx, r.coll, id, userID)
}
