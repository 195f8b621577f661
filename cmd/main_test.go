package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gamecatalog/cache"
	"gamecatalog/config"
	"gamecatalog/db"
	"gamecatalog/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteEnv(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	t.Setenv("APP_ENV", "test")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", path)
	t.Setenv("REDIS_URL", "")
	t.Setenv("FRONTEND_URL", "")
	return path
}

func countGames(t *testing.T, path string) int {
	t.Helper()
	store, err := db.Open(context.Background(), config.DatabaseConfig{
		Driver: "sqlite", URL: path, ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	defer store.Close()

	var games []models.Game
	_, err = store.Execute(context.Background(), &games, "SELECT * FROM games")
	require.NoError(t, err)
	return len(games)
}

func TestSeedDropsCachedListings(t *testing.T) {
	path := sqliteEnv(t)
	mr := miniredis.RunT(t)
	t.Setenv("REDIS_URL", mr.Addr())

	require.NoError(t, mr.Set(cache.ListKey(""), `{"success":true,"count":0,"data":[]}`))
	require.NoError(t, mr.Set(cache.ListKey("fifa"), `{"success":true,"count":0,"data":[]}`))
	require.NoError(t, mr.Set("session:1", "keep"))

	require.NoError(t, runSeed(context.Background(), ""))

	assert.Equal(t, []string{"session:1"}, mr.Keys())
	assert.Equal(t, len(db.DefaultCatalog()), countGames(t, path))
}

func TestSeedLoadsBundledCatalog(t *testing.T) {
	path := sqliteEnv(t)

	require.NoError(t, runSeed(context.Background(), ""))
	require.NoError(t, runSeed(context.Background(), ""))

	assert.Equal(t, len(db.DefaultCatalog()), countGames(t, path))
}

func TestSeedFromFile(t *testing.T) {
	path := sqliteEnv(t)
	file := filepath.Join(t.TempDir(), "games.json")
	require.NoError(t, os.WriteFile(file, []byte(`[
		{"title":"Celeste","platform":"PC (Steam)","region":"GLOBAL","price":"4.99",
		 "original_price":"19.99","discount_percentage":75,
		 "cover_image_url":"https://example.com/celeste.png","has_cashback":false,"stock_status":"Steam"},
		{"title":"Tetris","platform":"Game Boy","region":"EUROPE","price":1.5,
		 "original_price":null,"discount_percentage":null,
		 "cover_image_url":"https://example.com/tetris.png"}
	]`), 0o644))

	require.NoError(t, runSeed(context.Background(), file))

	assert.Equal(t, 2, countGames(t, path))
}

func TestSeedRejectsInvalidListing(t *testing.T) {
	path := sqliteEnv(t)
	file := filepath.Join(t.TempDir(), "games.json")
	require.NoError(t, os.WriteFile(file, []byte(`[
		{"title":"","platform":"PC","region":"GLOBAL","price":"-1","cover_image_url":"https://example.com/x.png"}
	]`), 0o644))

	err := runSeed(context.Background(), file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Title is required")
	assert.Contains(t, err.Error(), "Price must be greater than or equal to 0")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "database must not be touched")
}

func TestLoadCatalogFileErrors(t *testing.T) {
	_, err := loadCatalogFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"title":`), 0o644))
	_, err = loadCatalogFile(bad)
	assert.Error(t, err)
}

func TestListenBindsPort(t *testing.T) {
	l, err := listen(&config.Config{Port: "0"})
	require.NoError(t, err)
	defer l.Close()
	assert.NotEmpty(t, l.Addr().String())
}

func TestSkipPortBindRequiresInheritedSocket(t *testing.T) {
	t.Setenv("LISTEN_FDS", "")
	t.Setenv("LISTEN_PID", "")

	_, err := listen(&config.Config{SkipPortBind: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LISTEN_FDS")

	t.Setenv("LISTEN_PID", "1")
	t.Setenv("LISTEN_FDS", "1")
	_, err = listen(&config.Config{SkipPortBind: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}
