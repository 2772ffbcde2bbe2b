package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// crudRepository is the generic store-backed operation set shared by the
// typed repositories. Resource-specific behavior (cascades, counters, image
// cleanup) lives in the services as explicit hooks, not here.
type crudRepository[E any] struct {
	coll *mongo.Collection
}

func newCrudRepository[E any](coll *mongo.Collection) crudRepository[E] {
	return crudRepository[E]{coll: coll}
}

func (r *crudRepository[E]) getAll(ctx context.Context, filter bson.M) ([]*E, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var docs []*E
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", r.coll.Name(), err)
	}

	return docs, nil
}

func (r *crudRepository[E]) getByID(ctx context.Context, id primitive.ObjectID) (*E, error) {
	var doc E
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s %s: %w", r.coll.Name(), id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s by id: %w", r.coll.Name(), err)
	}
	return &doc, nil
}

func (r *crudRepository[E]) insert(ctx context.Context, doc *E) (primitive.ObjectID, error) {
	result, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert into %s: %w", r.coll.Name(), err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return id, nil
}

// updateByID applies update to one document and returns the post-update
// state.
func (r *crudRepository[E]) updateByID(ctx context.Context, id primitive.ObjectID, update bson.M) (*E, error) {
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc E
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, after).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s %s: %w", r.coll.Name(), id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update %s: %w", r.coll.Name(), err)
	}
	return &doc, nil
}

// deleteByID removes one document and returns it, so callers can run
// cleanup hooks against the removed state.
func (r *crudRepository[E]) deleteByID(ctx context.Context, id primitive.ObjectID) (*E, error) {
	var doc E
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s %s: %w", r.coll.Name(), id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to delete from %s: %w", r.coll.Name(), err)
	}
	return &doc, nil
}

// toggleLike flips the caller's membership in the likes array and adjusts
// likesCount in the same update, so the set and the counter can never
// diverge. The filter decides which way the toggle goes: the first update
// only matches documents the user has not liked yet, the second only
// documents they have.
func toggleLike[E any](ctx context.Context, coll *mongo.Collection, id, userID primitive.ObjectID) (*E, error) {
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc E
	err := coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "likes": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"likes": userID}, "$inc": bson.M{"likesCount": 1}},
		after,
	).Decode(&doc)
	if err == nil {
		return &doc, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to like %s: %w", coll.Name(), err)
	}

	err = coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "likes": userID},
		bson.M{"$pull": bson.M{"likes": userID}, "$inc": bson.M{"likesCount": -1}},
		after,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s %s: %w", coll.Name(), id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("failed to unlike %s: %w", coll.Name(), err)
	}
	return &doc, nil
}
