package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wayfarerhq/wayfarer-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// userRepository implements UserRepository on the users collection.
type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new user repository.
func NewUserRepository(coll *mongo.Collection) UserRepository {
	return &userRepository{coll: coll}
}

// Create inserts a new user. Email uniqueness is enforced by the unique
// index; a duplicate surfaces as ErrDuplicateEmail.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	if user.JoinDate.IsZero() {
		user.JoinDate = now
	}
	if user.RefreshTokens == nil {
		user.RefreshTokens = []string{}
	}

	result, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("user with email %s already exists: %w", user.Email, ErrDuplicateEmail)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}

	return nil
}

// GetByEmail retrieves a user by email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user with email %s not found: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user := &domain.User{}
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user with id %s not found: %w", id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// Update persists the mutable profile fields of a user. Refresh tokens are
// deliberately not written here; they only change through the push/pull
// operations below.
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	update := bson.M{"$set": bson.M{
		"firstName":      user.FirstName,
		"lastName":       user.LastName,
		"passwordHash":   user.PasswordHash,
		"headline":       user.Headline,
		"bio":            user.Bio,
		"location":       user.Location,
		"website":        user.Website,
		"profilePicture": user.ProfilePicture,
		"updatedAt":      time.Now(),
	}}

	result, err := r.coll.UpdateByID(ctx, user.ID, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found: %w", user.ID.Hex(), ErrNotFound)
	}

	return nil
}

// PushRefreshToken appends a refresh token to the user's stored list.
func (r *userRepository) PushRefreshToken(ctx context.Context, userID primitive.ObjectID, token string) error {
	result, err := r.coll.UpdateByID(ctx, userID, bson.M{"$push": bson.M{"refreshTokens": token}})
	if err != nil {
		return fmt.Errorf("failed to push refresh token: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found: %w", userID.Hex(), ErrNotFound)
	}
	return nil
}

// PullRefreshToken removes a refresh token from the user's stored list and
// reports whether it was present. The filter includes the token itself, so
// when concurrent refreshes race on the same token the store lets exactly
// one of them modify the document.
func (r *userRepository) PullRefreshToken(ctx context.Context, userID primitive.ObjectID, token string) (bool, error) {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID, "refreshTokens": token},
		bson.M{"$pull": bson.M{"refreshTokens": token}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to pull refresh token: %w", err)
	}
	return result.ModifiedCount > 0, nil
}
