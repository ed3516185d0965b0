package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ejoh/storefront-backend/config"
	"github.com/ejoh/storefront-backend/internal/app/model"
	"github.com/ejoh/storefront-backend/internal/kvstore"
	"github.com/ejoh/storefront-backend/pkg/util"
)

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:    "test-secret",
		TokenExpiry:  time.Hour,
		DemoEmail:    "demo@example.com",
		DemoPassword: "password",
		DemoName:     "Demo User",
		DemoAvatar:   "https://example.com/avatar.png",
	}
}

func setupAuthService(t *testing.T) (AuthService, kvstore.Store) {
	store := kvstore.NewMemoryStore()
	t.Cleanup(func() { store.Close() })

	cfg := testAuthConfig()
	verifier, err := NewDemoVerifier(cfg)
	require.NoError(t, err)

	auth := NewAuthService(store, verifier, cfg, &config.LatencyConfig{
		Login:    time.Millisecond,
		Register: time.Millisecond,
	})
	require.NoError(t, auth.Load(context.Background()))
	return auth, store
}

func TestAuthService_Login(t *testing.T) {
	auth, _ := setupAuthService(t)

	session, token, err := auth.Login(context.Background(), "demo@example.com", "password")
	require.NoError(t, err)
	assert.Equal(t, int64(1), session.ID)
	assert.Equal(t, "demo@example.com", session.Email)
	assert.Equal(t, "Demo User", session.Name)
	assert.NotEmpty(t, token)

	claims, err := util.ValidateToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, session.ID, claims.SessionID)
	assert.Equal(t, session.Email, claims.Email)

	current, ok := auth.Current()
	assert.True(t, ok)
	assert.Equal(t, session, current)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	auth, _ := setupAuthService(t)
	ctx := context.Background()

	_, _, err := auth.Login(ctx, "demo@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login(ctx, "someone@example.com", "password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, ok := auth.Current()
	assert.False(t, ok)
}

func TestAuthService_Login_ContextCancelled(t *testing.T) {
	auth, _ := setupAuthService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := auth.Login(ctx, "demo@example.com", "password")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAuthService_Register(t *testing.T) {
	auth, _ := setupAuthService(t)

	session, token, err := auth.Register(context.Background(), "A", "a@b.com", "x")
	require.NoError(t, err)
	assert.Equal(t, "A", session.Name)
	assert.Equal(t, "a@b.com", session.Email)
	assert.NotZero(t, session.ID)
	assert.NotEmpty(t, token)

	current, ok := auth.Current()
	assert.True(t, ok)
	assert.Equal(t, session, current)
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	auth, _ := setupAuthService(t)

	_, _, err := auth.Register(context.Background(), "", "a@b.com", "x")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "name")
	assert.NotContains(t, validationErr.Fields, "email")

	_, ok := auth.Current()
	assert.False(t, ok)
}

func TestAuthService_Register_ReplacesSession(t *testing.T) {
	auth, _ := setupAuthService(t)
	ctx := context.Background()

	_, _, err := auth.Login(ctx, "demo@example.com", "password")
	require.NoError(t, err)

	session, _, err := auth.Register(ctx, "Fresh", "fresh@example.com", "secret")
	require.NoError(t, err)

	current, ok := auth.Current()
	assert.True(t, ok)
	assert.Equal(t, session, current)
	assert.Equal(t, "fresh@example.com", current.Email)
}

func TestAuthService_Logout(t *testing.T) {
	auth, store := setupAuthService(t)
	ctx := context.Background()

	_, _, err := auth.Login(ctx, "demo@example.com", "password")
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx))

	_, ok := auth.Current()
	assert.False(t, ok)

	_, found, err := store.Get(ctx, kvstore.KeySession)
	require.NoError(t, err)
	assert.False(t, found)

	// Logging out again is a no-op
	assert.NoError(t, auth.Logout(ctx))
}

func TestAuthService_UpdateProfile(t *testing.T) {
	auth, _ := setupAuthService(t)
	ctx := context.Background()

	_, _, err := auth.Login(ctx, "demo@example.com", "password")
	require.NoError(t, err)

	name := "Renamed User"
	session, err := auth.UpdateProfile(ctx, model.ProfileUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed User", session.Name)
	// Untouched fields survive the merge
	assert.Equal(t, "demo@example.com", session.Email)
	assert.Equal(t, int64(1), session.ID)
}

func TestAuthService_UpdateProfile_NoSession(t *testing.T) {
	auth, _ := setupAuthService(t)

	name := "Renamed User"
	_, err := auth.UpdateProfile(context.Background(), model.ProfileUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestAuthService_SessionRoundTrip(t *testing.T) {
	store := kvstore.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	ctx := context.Background()

	cfg := testAuthConfig()
	verifier, err := NewDemoVerifier(cfg)
	require.NoError(t, err)
	latency := &config.LatencyConfig{Login: time.Millisecond, Register: time.Millisecond}

	first := NewAuthService(store, verifier, cfg, latency)
	require.NoError(t, first.Load(ctx))
	session, _, err := first.Login(ctx, "demo@example.com", "password")
	require.NoError(t, err)

	second := NewAuthService(store, verifier, cfg, latency)
	require.NoError(t, second.Load(ctx))

	restored, ok := second.Current()
	assert.True(t, ok)
	assert.Equal(t, session, restored)
}
