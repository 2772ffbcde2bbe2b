package service

import (
	"context"
	"errors"

	"github.com/wayfarerhq/wayfarer-api/internal/apperr"
	"github.com/wayfarerhq/wayfarer-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// hooks attach resource-specific behavior around the generic CRUD flow.
// Each service declares its hooks explicitly; a nil hook is a no-op.
type hooks[E any] struct {
	beforeCreate func(ctx context.Context, e *E) error
	afterCreate  func(ctx context.Context, e *E) error
	afterDelete  func(ctx context.Context, e *E)
}

func (h hooks[E]) runBeforeCreate(ctx context.Context, e *E) error {
	if h.beforeCreate == nil {
		return nil
	}
	return h.beforeCreate(ctx, e)
}

func (h hooks[E]) runAfterCreate(ctx context.Context, e *E) error {
	if h.afterCreate == nil {
		return nil
	}
	return h.afterCreate(ctx, e)
}

func (h hooks[E]) runAfterDelete(ctx context.Context, e *E) {
	if h.afterDelete != nil {
		h.afterDelete(ctx, e)
	}
}

// parseObjectID converts a path/query id into an ObjectID, reporting a
// validation failure for garbage input.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("invalid id")
	}
	return oid, nil
}

// notFoundOr translates the repository's not-found sentinel into a
// client-facing 404 with the given message; other errors pass through.
func notFoundOr(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(message)
	}
	return err
}
