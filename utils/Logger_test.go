package utils

import (
	"os"
	"path/filepath"
	"testing"

	"gamecatalog/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerDevelopment(t *testing.T) {
	InitLogger(&config.Config{Env: config.EnvDevelopment, Log: config.LogConfig{Level: "debug"}})

	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, Log.Formatter)
}

func TestInitLoggerProductionWritesRotatedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "app.log")
	InitLogger(&config.Config{Env: config.EnvProduction, Log: config.LogConfig{Level: "bogus", File: file}})
	defer InitLogger(&config.Config{Env: config.EnvTest, Log: config.LogConfig{Level: "info"}})

	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, Log.Formatter)

	Log.Info("catalog ready")
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"catalog ready"`)
}
