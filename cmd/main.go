package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gamecatalog/cache"
	"gamecatalog/config"
	"gamecatalog/db"
	"gamecatalog/handlers"
	"gamecatalog/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gamecatalog",
		Short:         "Game catalog search API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Bootstrap the schema and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	})
	root.AddCommand(newSeedCmd())
	return root
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		utils.Log.WithError(err).Error("Invalid configuration")
		return nil, err
	}
	utils.InitLogger(cfg)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return cfg, nil
}

func runServe(parent context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(parent), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(ctx, cfg.Database)
	if err != nil {
		utils.Log.WithError(err).Error("Failed to connect to database")
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		utils.Log.WithError(err).Error("Failed to initialize database schema")
		return err
	}

	listCache, err := cache.New(ctx, cfg.Redis)
	if err != nil {
		// the cache is an optimisation; serve without it
		utils.Log.WithError(err).Warn("Redis unavailable, list cache disabled")
	}
	defer listCache.Close()

	svc := handlers.NewGameService(store, listCache)
	router := handlers.NewRouter(cfg, svc)

	listener, err := listen(cfg)
	if err != nil {
		utils.Log.WithError(err).Error("Failed to open listener")
		return err
	}

	server := &http.Server{Handler: router}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()

	utils.Log.WithFields(logrus.Fields{
		"addr":        listener.Addr().String(),
		"env":         cfg.Env,
		"inherited":   cfg.SkipPortBind,
		"cache":       listCache.Enabled(),
		"health_path": "/health",
	}).Info("Server running")

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			utils.Log.WithError(err).Error("Server stopped unexpectedly")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	utils.Log.Info("Shutdown signal received, closing server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
