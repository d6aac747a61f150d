package services

import (
	"context"
	"testing"

	"diu-alumnihub/internal/config"
	"diu-alumnihub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:            "0123456789abcdef0123456789abcdef",
			AccessExpiryMins:  15,
			RefreshExpiryDays: 7,
		},
		Admin: config.AdminConfig{
			Email: "sysadmin@example.com",
		},
	}
}

func TestRegister(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo, newFakeTokenRepo(), testConfig())
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Email:     "new@example.com",
		Password:  "supersecret",
		FirstName: "New",
		LastName:  "User",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleList{domain.RoleGuest}, user.Roles)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "supersecret", user.Password)

	// Duplicate email
	_, err = svc.Register(ctx, RegisterInput{Email: "new@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	// Short password
	_, err = svc.Register(ctx, RegisterInput{Email: "other@example.com", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRegisterSystemAdminEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), newFakeTokenRepo(), testConfig())

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    "sysadmin@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.True(t, user.Roles.Has(domain.RoleSystemAdmin))
}

func TestLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo, newFakeTokenRepo(), testConfig())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "login@example.com", Password: "supersecret"})
	require.NoError(t, err)

	user, tokens, err := svc.Login(ctx, "login@example.com", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NotNil(t, user.LastLoginAt)

	_, _, err = svc.Login(ctx, "login@example.com", "wrongpass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "unknown@example.com", "supersecret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo, newFakeTokenRepo(), testConfig())
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Email: "inactive@example.com", Password: "supersecret"})
	require.NoError(t, err)

	registered.IsActive = false
	require.NoError(t, userRepo.Update(ctx, registered))

	_, _, err = svc.Login(ctx, "inactive@example.com", "supersecret")
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestRefreshTokenRotation(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo, newFakeTokenRepo(), testConfig())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "rotate@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, tokens, err := svc.Login(ctx, "rotate@example.com", "supersecret")
	require.NoError(t, err)

	rotated, err := svc.RefreshTokens(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	// The old token is single use
	_, err = svc.RefreshTokens(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)

	// The new one still works
	_, err = svc.RefreshTokens(ctx, rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestLogoutRevokesToken(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo, newFakeTokenRepo(), testConfig())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "bye@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, tokens, err := svc.Login(ctx, "bye@example.com", "supersecret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, tokens.RefreshToken))

	_, err = svc.RefreshTokens(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenRevoked)
}

func TestRefreshWithGarbageToken(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), newFakeTokenRepo(), testConfig())

	_, err := svc.RefreshTokens(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
