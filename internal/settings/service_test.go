package settings

import (
	"context"
	"testing"

	"kirana-backend/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCreatesDefaultsOnFirstRead(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewService(store)
	ctx := context.Background()

	settings, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", settings.UserID)
	assert.Equal(t, 18.0, settings.DefaultGST)
	assert.Equal(t, 80, settings.Bill.PaperWidth)

	// The defaults are persisted, not just returned.
	var stored struct {
		DefaultGST float64 `bson:"defaultGST"`
	}
	require.NoError(t, store.Get(ctx, database.Settings, "user-1", &stored))
	assert.Equal(t, 18.0, stored.DefaultGST)
}

func TestUpdateRoundTrips(t *testing.T) {
	svc := NewService(database.NewMemoryStore())
	ctx := context.Background()

	settings, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)

	settings.DefaultGST = 5
	settings.Business.Name = "Sharma Kirana"
	require.NoError(t, svc.Update(ctx, settings))

	loaded, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5.0, loaded.DefaultGST)
	assert.Equal(t, "Sharma Kirana", loaded.Business.Name)
}

func TestDefaultGSTFor(t *testing.T) {
	svc := NewService(database.NewMemoryStore())
	ctx := context.Background()

	assert.Equal(t, 18.0, svc.DefaultGSTFor(ctx, "user-1"))

	settings, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	settings.DefaultGST = 12
	require.NoError(t, svc.Update(ctx, settings))

	assert.Equal(t, 12.0, svc.DefaultGSTFor(ctx, "user-1"))
}

func TestSettingsArePerUser(t *testing.T) {
	svc := NewService(database.NewMemoryStore())
	ctx := context.Background()

	a, err := svc.Get(ctx, "user-a")
	require.NoError(t, err)
	a.DefaultGST = 28
	require.NoError(t, svc.Update(ctx, a))

	b, err := svc.Get(ctx, "user-b")
	require.NoError(t, err)
	assert.Equal(t, 18.0, b.DefaultGST)
}
