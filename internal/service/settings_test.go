package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aimaster-store/internal/client"
	"aimaster-store/internal/dto"
	"aimaster-store/internal/service"
)

func strPtr(s string) *string { return &s }

func TestSettingsDefaults(t *testing.T) {
	db, err := client.InitSettingsDB(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	settings := service.NewSettingsService(db)

	got, err := settings.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ai Master", got.AppName)
	assert.Empty(t, got.IconURL)
}

func TestSettingsUpdateMergesOverPrior(t *testing.T) {
	db, err := client.InitSettingsDB(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	settings := service.NewSettingsService(db)
	ctx := context.Background()

	_, err = settings.Update(ctx, &dto.SettingsRequest{
		AppName: strPtr("My Store"),
		IconURL: strPtr("https://example.com/icon.png"),
	})
	require.NoError(t, err)

	// unset fields are preserved
	updated, err := settings.Update(ctx, &dto.SettingsRequest{AppName: strPtr("Renamed Store")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Store", updated.AppName)
	assert.Equal(t, "https://example.com/icon.png", updated.IconURL)

	got, err := settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Store", got.AppName)
	assert.Equal(t, "https://example.com/icon.png", got.IconURL)
}

func TestSettingsSurviveRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")

	db, err := client.InitSettingsDB(path)
	require.NoError(t, err)
	_, err = service.NewSettingsService(db).Update(context.Background(), &dto.SettingsRequest{
		AppName: strPtr("Persisted"),
	})
	require.NoError(t, err)

	// fresh handle over the same file, as after a process restart
	db2, err := client.InitSettingsDB(path)
	require.NoError(t, err)
	got, err := service.NewSettingsService(db2).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Persisted", got.AppName)
}

func TestSettingsChangeBroadcast(t *testing.T) {
	db, err := client.InitSettingsDB(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	settings := service.NewSettingsService(db)

	updates := settings.Subscribe()

	_, err = settings.Update(context.Background(), &dto.SettingsRequest{AppName: strPtr("Broadcast")})
	require.NoError(t, err)

	select {
	case got := <-updates:
		assert.Equal(t, "Broadcast", got.AppName)
	case <-time.After(time.Second):
		t.Fatal("no settings notification received")
	}
}
