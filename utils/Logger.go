package utils

import (
	"io"
	"os"
	"path/filepath"

	"gamecatalog/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is usable before InitLogger runs; InitLogger only reconfigures it.
var Log = logrus.New()

// InitLogger initializes the structured logger
func InitLogger(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// JSON for production, text for everything else
	if cfg.IsProduction() {
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			ForceColors:     cfg.IsDevelopment(),
		})
	}

	Log.SetOutput(os.Stdout)

	// Production also keeps a rotated file
	if cfg.IsProduction() && cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			Log.WithError(err).Warn("Cannot create log directory, logging to stdout only")
		} else {
			logFile := &lumberjack.Logger{
				Filename:   cfg.Log.File,
				MaxSize:    10, // MB
				MaxBackups: 5,
				MaxAge:     30, // days
				Compress:   true,
			}
			Log.SetOutput(io.MultiWriter(os.Stdout, logFile))
		}
	}

	Log.WithField("env", cfg.Env).Debug("Logger initialized")
}
