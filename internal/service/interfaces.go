package service

import (
	"context"

	"github.com/wayfarerhq/wayfarer-api/internal/domain"
	"github.com/wayfarerhq/wayfarer-api/internal/dto"
	"github.com/wayfarerhq/wayfarer-api/internal/platform/itinerary"
	"github.com/wayfarerhq/wayfarer-api/internal/storage"
)

// AuthService defines methods for the auth/session lifecycle.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GoogleSignIn(ctx context.Context, credential string) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUser(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, userID string, req *dto.UpdateUserRequest, avatar *storage.Upload) (*dto.UserResponse, error)
	ValidateAccessToken(token string) (*domain.TokenClaims, error)
}

// PostService defines operations on posts. Mutating operations other than
// like toggles are restricted to the sender.
type PostService interface {
	GetAll(ctx context.Context, senderID string) ([]*domain.Post, error)
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	Create(ctx context.Context, senderID string, req *dto.CreatePostRequest, images []storage.Upload) (*domain.Post, error)
	Update(ctx context.Context, id, callerID string, req *dto.UpdatePostRequest) (*domain.Post, error)
	Delete(ctx context.Context, id, callerID string) error
	ToggleLike(ctx context.Context, id, callerID string) (*domain.Post, error)
}

// CommentService defines operations on comments.
type CommentService interface {
	GetAll(ctx context.Context, senderID string) ([]*domain.Comment, error)
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	GetByPost(ctx context.Context, postID string) ([]*domain.Comment, error)
	Create(ctx context.Context, senderID string, req *dto.CreateCommentRequest, images []storage.Upload) (*domain.Comment, error)
	Update(ctx context.Context, id, callerID string, req *dto.UpdateCommentRequest) (*domain.Comment, error)
	Delete(ctx context.Context, id, callerID string) error
	ToggleLike(ctx context.Context, id, callerID string) (*domain.Comment, error)
}

// TripService defines operations on AI-assisted trip itineraries.
type TripService interface {
	Generate(ctx context.Context, req *dto.GenerateTripRequest) (*itinerary.Plan, error)
	Save(ctx context.Context, ownerID string, req *dto.SaveTripRequest) (*domain.Trip, error)
	List(ctx context.Context, ownerID string) ([]*domain.Trip, error)
	Get(ctx context.Context, id, ownerID string) (*domain.Trip, error)
	Delete(ctx context.Context, id, ownerID string) error
}
