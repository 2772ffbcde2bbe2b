package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wayfarerhq/wayfarer-api/internal/apperr"
	"github.com/wayfarerhq/wayfarer-api/internal/domain"
	"github.com/wayfarerhq/wayfarer-api/internal/dto"
	"github.com/wayfarerhq/wayfarer-api/internal/platform/googleauth"
	"github.com/wayfarerhq/wayfarer-api/internal/storage"
	"github.com/wayfarerhq/wayfarer-api/internal/utils"
	"go.uber.org/zap"
)

const testSecret = "test-secret-key-that-is-at-least-32-characters-long"

func newTestAuthService(users *fakeUserRepo, verifier googleauth.Verifier, images *fakeImageStore) AuthService {
	jwtManager := utils.NewJWTManager(testSecret, 15*time.Minute, 7*24*time.Hour)
	if images == nil {
		images = &fakeImageStore{}
	}
	return NewAuthService(users, jwtManager, verifier, images, zap.NewNop(), 4)
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "Password123",
	}
}

func TestRegister_Success(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, nil, nil)

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.Equal(t, domain.DefaultProfilePicture, resp.User.ProfilePicture)

	stored, err := users.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderLocal, stored.AuthProvider)
	assert.NotEqual(t, "Password123", stored.PasswordHash)
	assert.Contains(t, users.tokens(stored.ID), resp.RefreshToken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, nil, nil)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest())
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestRegister_WeakPassword(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), nil, nil)

	req := registerRequest()
	req.Password = "alllowercase"
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestRegister_MissingSecretIsConfigurationError(t *testing.T) {
	users := newFakeUserRepo()
	jwtManager := utils.NewJWTManager("", 15*time.Minute, 7*24*time.Hour)
	svc := NewAuthService(users, jwtManager, nil, &fakeImageStore{}, zap.NewNop(), 4)

	_, err := svc.Register(context.Background(), registerRequest())
	require.Error(t, err)
	assert.Equal(t, apperr.KindConfiguration, apperr.KindOf(err))
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, nil, nil)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, errWrong := svc.Login(context.Background(), &dto.LoginRequest{Email: "ada@example.com", Password: "Nope12345"})
	_, errUnknown := svc.Login(context.Background(), &dto.LoginRequest{Email: "ghost@example.com", Password: "Password123"})

	require.Error(t, errWrong)
	require.Error(t, errUnknown)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(errWrong))
	assert.Equal(t, apperr.MessageOf(errWrong), apperr.MessageOf(errUnknown))
}

func TestLogin_RepeatedLoginsIssueDistinctTokens(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, nil, nil)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	req := &dto.LoginRequest{Email: "ada@example.com", Password: "Password123"}
	first, err := svc.Login(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Login(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, first.AccessToken, second.AccessToken)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
}

func TestGoogleSignIn_CreatesAccountOnFirstSight(t *testing.T) {
	users := newFakeUserRepo()
	verifier := &fakeVerifier{identity: &googleauth.Identity{
		Subject:   "google-sub",
		Email:     "grace@example.com",
		FirstName: "Grace",
		LastName:  "Hopper",
		Picture:   "https://lh3.example/avatar.jpg",
	}}
	svc := newTestAuthService(users, verifier, nil)

	resp, err := svc.GoogleSignIn(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", resp.User.Email)

	stored, err := users.GetByEmail(context.Background(), "grace@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderGoogle, stored.AuthProvider)
	assert.Empty(t, stored.PasswordHash)

	// Second sign-in reuses the account.
	again, err := svc.GoogleSignIn(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, again.User.ID)
}

func TestGoogleAccount_PasswordLoginDisabled(t *testing.T) {
	users := newFakeUserRepo()
	verifier := &fakeVerifier{identity: &googleauth.Identity{
		Subject: "google-sub",
		Email:   "grace@example.com",
	}}
	svc := newTestAuthService(users, verifier, nil)

	_, err := svc.GoogleSignIn(context.Background(), "id-token")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "grace@example.com", Password: ""})
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
}

func TestRefresh_RotatesAndRejectsReplay(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, nil, nil)

	registered, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The consumed token must not work a second time.
	_, err = svc.Refresh(context.Background(), registered.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidToken, apperr.KindOf(err))

	// The fresh one still does.
	_, err = svc.Refresh(context.Background(), refreshed.RefreshToken)
	require.NoError(t, err)
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), nil, nil)

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidToken, apperr.KindOf(err))
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, nil, nil)

	registered, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), registered.AccessToken)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidToken, apperr.KindOf(err))
}

func TestLogout_EmptyTokenMessage(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), nil, nil)

	err := svc.Logout(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "Refresh token is required", apperr.MessageOf(err))
}

func TestLogout_RemovesTokenAndIsIdempotent(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, nil, nil)

	registered, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), registered.RefreshToken))

	stored, err := users.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.NotContains(t, users.tokens(stored.ID), registered.RefreshToken)

	// Logging out the same token again is a no-op, not an error.
	require.NoError(t, svc.Logout(context.Background(), registered.RefreshToken))

	// The consumed token cannot refresh anymore.
	_, err = svc.Refresh(context.Background(), registered.RefreshToken)
	require.Error(t, err)
}

func TestUpdateUser_ReplacesAvatarAndDeletesOld(t *testing.T) {
	users := newFakeUserRepo()
	images := &fakeImageStore{}
	svc := newTestAuthService(users, nil, images)

	registered, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	// First upload: the old picture is the default and must be kept.
	first, err := svc.UpdateUser(context.Background(), registered.User.ID, &dto.UpdateUserRequest{},
		&storage.Upload{Filename: "a.png"})
	require.NoError(t, err)
	assert.NotEqual(t, domain.DefaultProfilePicture, first.ProfilePicture)
	assert.Empty(t, images.deletedURLs())

	// Second upload: the previous upload gets deleted.
	second, err := svc.UpdateUser(context.Background(), registered.User.ID, &dto.UpdateUserRequest{},
		&storage.Upload{Filename: "b.png"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ProfilePicture, second.ProfilePicture)
	assert.Equal(t, []string{first.ProfilePicture}, images.deletedURLs())
}

func TestUpdateUser_PartialFields(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(users, nil, nil)

	registered, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	bio := "Travel addict"
	updated, err := svc.UpdateUser(context.Background(), registered.User.ID,
		&dto.UpdateUserRequest{Bio: &bio}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Travel addict", updated.Bio)
	assert.Equal(t, "Ada", updated.FirstName)
}

func TestGetUser_NotFound(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), nil, nil)

	_, err := svc.GetUser(context.Background(), "64ffffffffffffffffffffff")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
