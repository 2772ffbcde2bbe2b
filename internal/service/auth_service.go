package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/wayfarerhq/wayfarer-api/internal/apperr"
	"github.com/wayfarerhq/wayfarer-api/internal/domain"
	"github.com/wayfarerhq/wayfarer-api/internal/dto"
	"github.com/wayfarerhq/wayfarer-api/internal/platform/googleauth"
	"github.com/wayfarerhq/wayfarer-api/internal/repository"
	"github.com/wayfarerhq/wayfarer-api/internal/storage"
	"github.com/wayfarerhq/wayfarer-api/internal/utils"
	"go.uber.org/zap"
)

// credentialsMessage is shared by every password-login failure so callers
// cannot probe which emails have accounts.
const credentialsMessage = "invalid email or password"

// authService implements AuthService.
type authService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	verifier   googleauth.Verifier
	images     storage.ImageStore
	logger     *zap.Logger
	bcryptCost int
}

// NewAuthService creates a new auth service. The Google verifier and image
// store are injected collaborators so tests can substitute them.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtManager *utils.JWTManager,
	verifier googleauth.Verifier,
	images storage.ImageStore,
	logger *zap.Logger,
	bcryptCost int,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		verifier:   verifier,
		images:     images,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// Register registers a new user.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if !utils.ValidateEmail(req.Email) {
		return nil, apperr.Validation("invalid email format")
	}

	if !utils.ValidatePassword(req.Password) {
		return nil, apperr.Validation("password must be at least 8 characters long and contain uppercase, lowercase, and number")
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          utils.SanitizeEmail(req.Email),
		PasswordHash:   passwordHash,
		AuthProvider:   domain.ProviderLocal,
		ProfilePicture: domain.DefaultProfilePicture,
	}

	// The unique index decides duplicates; no read-then-insert race.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperr.Validation("user with this email already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Login authenticates a user with email and password.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Authentication(credentialsMessage)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Externally-provisioned accounts have no usable password; fail the
	// same way a wrong password does.
	if user.IsExternal() || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperr.Authentication(credentialsMessage)
	}

	return s.issueTokens(ctx, user)
}

// GoogleSignIn verifies an external identity token and signs the user in,
// creating the account on first sight.
func (s *authService) GoogleSignIn(ctx context.Context, credential string) (*dto.AuthResponse, error) {
	identity, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(identity.Email))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		user, err = s.createGoogleUser(ctx, identity)
		if err != nil {
			return nil, err
		}
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) createGoogleUser(ctx context.Context, identity *googleauth.Identity) (*domain.User, error) {
	picture := identity.Picture
	if picture == "" {
		picture = domain.DefaultProfilePicture
	}

	user := &domain.User{
		FirstName:      identity.FirstName,
		LastName:       identity.LastName,
		Email:          utils.SanitizeEmail(identity.Email),
		AuthProvider:   domain.ProviderGoogle,
		ProfilePicture: picture,
	}

	err := s.userRepo.Create(ctx, user)
	if err == nil {
		return user, nil
	}

	// Two first sign-ins racing: the index let one insert through, use it.
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return s.userRepo.GetByEmail(ctx, user.Email)
	}
	return nil, fmt.Errorf("failed to create user: %w", err)
}

// Refresh rotates a refresh token: the used token is removed from the
// user's stored list before the new pair is issued, making each token
// single-use. When concurrent refreshes race on one token, the store's
// atomic pull lets at most one succeed.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	if refreshToken == "" {
		return nil, apperr.InvalidToken("invalid refresh token")
	}

	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, apperr.InvalidToken("invalid refresh token")
	}

	removed, err := s.userRepo.PullRefreshToken(ctx, oid, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to consume refresh token: %w", err)
	}
	if !removed {
		return nil, apperr.InvalidToken("invalid refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout removes one refresh token from the user's stored list. Removing a
// token that is already gone is not an error.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return apperr.Validation("Refresh token is required")
	}

	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return err
	}

	oid, err := parseObjectID(userID)
	if err != nil {
		return apperr.InvalidToken("invalid refresh token")
	}

	if _, err := s.userRepo.PullRefreshToken(ctx, oid, refreshToken); err != nil {
		return fmt.Errorf("failed to remove refresh token: %w", err)
	}

	return nil
}

// GetUser returns the public profile of a user.
func (s *authService) GetUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}

	return userResponse(user), nil
}

// UpdateUser mutates non-secret profile fields of a user. A password change
// re-hashes; a profile-picture replacement deletes the previously uploaded
// file unless it is the default.
func (s *authService) UpdateUser(ctx context.Context, userID string, req *dto.UpdateUserRequest, avatar *storage.Upload) (*dto.UserResponse, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}

	applyIfSet(&user.FirstName, req.FirstName)
	applyIfSet(&user.LastName, req.LastName)
	applyIfSet(&user.Headline, req.Headline)
	applyIfSet(&user.Bio, req.Bio)
	applyIfSet(&user.Location, req.Location)
	applyIfSet(&user.Website, req.Website)

	if req.Password != nil {
		if !utils.ValidatePassword(*req.Password) {
			return nil, apperr.Validation("password must be at least 8 characters long and contain uppercase, lowercase, and number")
		}
		hash, err := utils.HashPassword(*req.Password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	oldPicture := user.ProfilePicture
	if avatar != nil {
		url, err := s.images.Put(ctx, *avatar)
		if err != nil {
			return nil, fmt.Errorf("failed to upload profile picture: %w", err)
		}
		user.ProfilePicture = url
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, notFoundOr(err, "User not found")
	}

	// Best effort: an orphaned object must not fail the profile update.
	if avatar != nil && oldPicture != "" && oldPicture != domain.DefaultProfilePicture {
		if err := s.images.Delete(ctx, oldPicture); err != nil {
			s.logger.Warn("failed to delete old profile picture",
				zap.String("url", oldPicture), zap.Error(err))
		}
	}

	return userResponse(user), nil
}

// ValidateAccessToken validates an access token.
func (s *authService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	return s.jwtManager.ValidateAccessToken(token)
}

func applyIfSet(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
