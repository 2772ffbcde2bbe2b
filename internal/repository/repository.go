package repository

import (
	"github.com/wayfarerhq/wayfarer-api/pkg/database"
)

// Repositories holds all repository interfaces.
type Repositories struct {
	User    UserRepository
	Post    PostRepository
	Comment CommentRepository
	Trip    TripRepository
}

// NewRepositories creates all repositories.
func NewRepositories(db *database.Mongo) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db.Collection("users")),
		Post:    NewPostRepository(db.Collection("posts")),
		Comment: NewCommentRepository(db.Collection("comments")),
		Trip:    NewTripRepository(db.Collection("trips")),
	}
}
