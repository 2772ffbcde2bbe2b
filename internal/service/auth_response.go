package service

import (
	"context"
	"fmt"
	"time"

	"github.com/wayfarerhq/wayfarer-api/internal/domain"
	"github.com/wayfarerhq/wayfarer-api/internal/dto"
)

// issueTokens generates a new access/refresh pair for the user and appends
// the refresh token to the user's stored list. Every login/refresh path
// funnels through here.
func (s *authService) issueTokens(ctx context.Context, user *domain.User) (*dto.AuthResponse, error) {
	pair, err := s.jwtManager.IssuePair(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.PushRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
		User: dto.UserInfo{
			ID:             user.ID.Hex(),
			FirstName:      user.FirstName,
			LastName:       user.LastName,
			Email:          user.Email,
			ProfilePicture: user.ProfilePicture,
		},
	}, nil
}

func userResponse(user *domain.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:             user.ID.Hex(),
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Email:          user.Email,
		Headline:       user.Headline,
		Bio:            user.Bio,
		Location:       user.Location,
		Website:        user.Website,
		ProfilePicture: user.ProfilePicture,
		JoinDate:       user.JoinDate.Format(time.RFC3339),
	}
}
