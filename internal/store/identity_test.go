package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delphine/shop/internal/store"
)

func seededIdentity(t *testing.T) *store.Identity {
	t.Helper()
	s := store.NewIdentity(newMemState())
	s.Seed(context.Background(), store.DefaultCredentials())
	return s
}

func TestIdentityLoginSeededAdmin(t *testing.T) {
	ctx := context.Background()
	s := seededIdentity(t)

	u, err := s.Login(ctx, "Admin@Delphine.com", "admin123")

	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
	assert.True(t, s.IsAuthenticated())
}

func TestIdentityLoginFailureLeavesSessionUntouched(t *testing.T) {
	ctx := context.Background()
	s := seededIdentity(t)
	_, err := s.Login(ctx, "demo@delphine.com", "demo123")
	require.NoError(t, err)

	_, err = s.Login(ctx, "demo@delphine.com", "wrong")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)
	_, err = s.Login(ctx, "unknown@delphine.com", "demo123")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)

	u, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "demo@delphine.com", u.Email)
}

func TestIdentityRegisterLogsInNonAdmin(t *testing.T) {
	ctx := context.Background()
	s := seededIdentity(t)

	u, err := s.Register(ctx, store.RegisterInput{Name: "New User", Email: "new@example.com", Password: "pw"})

	require.NoError(t, err)
	assert.False(t, u.IsAdmin)
	assert.NotEmpty(t, u.ID)
	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, u.ID, current.ID)
}

func TestIdentityRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := seededIdentity(t)

	_, err := s.Register(ctx, store.RegisterInput{Name: "X", Email: "DEMO@delphine.com", Password: "pw"})

	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestIdentityLoginOAuthCreatesOnFirstSight(t *testing.T) {
	ctx := context.Background()
	s := seededIdentity(t)

	u := s.LoginOAuth(ctx, "google@example.com", "Google User")
	assert.NotEmpty(t, u.ID)
	assert.True(t, s.IsAuthenticated())

	s.Logout(ctx)
	again := s.LoginOAuth(ctx, "google@example.com", "Renamed")
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, "Google User", again.Name)
}

func TestIdentityUpdateProfileSyncsRegistry(t *testing.T) {
	ctx := context.Background()
	s := seededIdentity(t)
	_, err := s.Login(ctx, "demo@delphine.com", "demo123")
	require.NoError(t, err)

	name := "Renamed User"
	u, err := s.UpdateProfile(ctx, store.ProfilePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed User", u.Name)

	// Registry entry must match: a fresh login sees the new name.
	s.Logout(ctx)
	again, err := s.Login(ctx, "demo@delphine.com", "demo123")
	require.NoError(t, err)
	assert.Equal(t, "Renamed User", again.Name)
}

func TestIdentityUpdateProfileRequiresSession(t *testing.T) {
	ctx := context.Background()
	s := seededIdentity(t)

	name := "X"
	_, err := s.UpdateProfile(ctx, store.ProfilePatch{Name: &name})

	assert.ErrorIs(t, err, store.ErrNotLoggedIn)
}

func TestIdentityChangePassword(t *testing.T) {
	ctx := context.Background()
	s := seededIdentity(t)
	_, err := s.Login(ctx, "demo@delphine.com", "demo123")
	require.NoError(t, err)

	assert.ErrorIs(t, s.ChangePassword(ctx, "wrong", "next"), store.ErrWrongPassword)
	require.NoError(t, s.ChangePassword(ctx, "demo123", "next"))

	s.Logout(ctx)
	_, err = s.Login(ctx, "demo@delphine.com", "demo123")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)
	_, err = s.Login(ctx, "demo@delphine.com", "next")
	assert.NoError(t, err)
}

func TestIdentityRehydrateRestoresSession(t *testing.T) {
	ctx := context.Background()
	state := newMemState()
	first := store.NewIdentity(state)
	first.Seed(ctx, store.DefaultCredentials())
	_, err := first.Login(ctx, "demo@delphine.com", "demo123")
	require.NoError(t, err)

	second := store.NewIdentity(state)
	second.Rehydrate(ctx)

	u, ok := second.Current()
	require.True(t, ok)
	assert.Equal(t, "demo@delphine.com", u.Email)
}
