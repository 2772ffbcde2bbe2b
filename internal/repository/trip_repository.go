package repository

import (
	"context"
	"time"

	"github.com/wayfarerhq/wayfarer-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// tripRepository implements TripRepository on the trips collection.
type tripRepository struct {
	crudRepository[domain.Trip]
}

// NewTripRepository creates a new trip repository.
func NewTripRepository(coll *mongo.Collection) TripRepository {
	return &tripRepository{crudRepository: newCrudRepository[domain.Trip](coll)}
}

func (r *tripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = time.Now()
	}

	id, err := r.insert(ctx, trip)
	if err != nil {
		return err
	}
	trip.ID = id
	return nil
}

func (r *tripRepository) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*domain.Trip, error) {
	return r.getAll(ctx, bson.M{"ownerId": ownerID})
}

func (r *tripRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trip, error) {
	return r.getByID(ctx, id)
}

func (r *tripRepository) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Trip, error) {
	return r.deleteByID(ctx, id)
}
