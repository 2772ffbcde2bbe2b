package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/wayfarerhq/wayfarer-api/internal/apperr"
	"github.com/wayfarerhq/wayfarer-api/internal/domain"
)

// JWTManager signs and validates access/refresh token pairs. Both token
// kinds carry a random jti salt so repeated issuance for the same user never
// yields identical strings.
type JWTManager struct {
	secret             []byte
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

// NewJWTManager creates a new JWT manager. An empty secret is allowed here;
// issuance will fail with a configuration error until one is provided.
func NewJWTManager(secret string, accessTokenExpiry, refreshTokenExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secret:             []byte(secret),
		accessTokenExpiry:  accessTokenExpiry,
		refreshTokenExpiry: refreshTokenExpiry,
	}
}

// IssuePair generates a new access/refresh token pair for a user.
func (j *JWTManager) IssuePair(userID string) (*domain.TokenPair, error) {
	if len(j.secret) == 0 {
		return nil, apperr.Configuration("token signing secret is not configured")
	}

	now := time.Now()

	accessClaims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(j.accessTokenExpiry).Unix(),
		"iat":     now.Unix(),
		"jti":     uuid.New().String(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(j.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshClaims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(j.refreshTokenExpiry).Unix(),
		"iat":     now.Unix(),
		"type":    "refresh",
		"jti":     uuid.New().String(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(j.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(j.accessTokenExpiry.Seconds()),
	}, nil
}

// ValidateAccessToken validates an access token and returns its claims.
func (j *JWTManager) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		return nil, err
	}

	// Refresh tokens must not be usable as access credentials.
	if claims["type"] == "refresh" {
		return nil, apperr.InvalidToken("invalid token type")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, apperr.InvalidToken("invalid user_id in token")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, apperr.InvalidToken("invalid exp in token")
	}

	iat, _ := claims["iat"].(float64)

	tokenClaims := &domain.TokenClaims{
		UserID: userID,
		Exp:    int64(exp),
		Iat:    int64(iat),
	}

	if tokenClaims.IsExpired() {
		return nil, apperr.InvalidToken("token is expired")
	}

	return tokenClaims, nil
}

// ValidateRefreshToken validates a refresh token and returns the owning user
// id. Signature validity alone is not enough to refresh; the caller must
// still find the token in the user's stored list.
func (j *JWTManager) ValidateRefreshToken(tokenString string) (string, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		return "", err
	}

	if claims["type"] != "refresh" {
		return "", apperr.InvalidToken("invalid token type")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", apperr.InvalidToken("invalid user_id in token")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return "", apperr.InvalidToken("invalid exp in token")
	}

	if time.Now().Unix() > int64(exp) {
		return "", apperr.InvalidToken("token is expired")
	}

	return userID, nil
}

// GetAccessTokenExpiry returns the access token expiry duration in seconds.
func (j *JWTManager) GetAccessTokenExpiry() int {
	return int(j.accessTokenExpiry.Seconds())
}

func (j *JWTManager) parse(tokenString string) (jwt.MapClaims, error) {
	if len(j.secret) == 0 {
		return nil, apperr.Configuration("token signing secret is not configured")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})

	if err != nil {
		return nil, apperr.Wrap(apperr.KindInvalidToken, "failed to parse token", err)
	}

	if !token.Valid {
		return nil, apperr.InvalidToken("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.InvalidToken("invalid token claims")
	}

	return claims, nil
}
