package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gamecatalog/cache"
	"gamecatalog/db"
	"gamecatalog/models"
	"gamecatalog/utils"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the catalog with the bundled listings or a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(contextOrBackground(cmd.Context()), file)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON array of listings to load instead of the bundled set")
	return cmd
}

func runSeed(ctx context.Context, file string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	games := db.DefaultCatalog()
	if file != "" {
		if games, err = loadCatalogFile(file); err != nil {
			return err
		}
	}
	if err := validateCatalog(games); err != nil {
		return err
	}

	store, err := db.Open(ctx, cfg.Database)
	if err != nil {
		utils.Log.WithError(err).Error("Failed to connect to database")
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	inserted, err := store.Replace(ctx, games)
	if err != nil {
		utils.Log.WithError(err).Error("Error seeding database")
		return err
	}
	utils.Log.WithField("inserted", inserted).Info("Replaced catalog contents")

	var rows []map[string]interface{}
	if _, err := store.Execute(ctx, &rows, "SELECT COUNT(*) AS total FROM games"); err != nil {
		return err
	}
	if len(rows) == 1 {
		utils.Log.WithField("total", rows[0]["total"]).Info("Total games in database")
	}

	listCache, err := cache.New(ctx, cfg.Redis)
	if err != nil {
		utils.Log.WithError(err).Warn("Redis unavailable, cached listings expire on their own")
		return nil
	}
	defer listCache.Close()
	if err := listCache.InvalidateLists(ctx); err != nil {
		utils.Log.WithError(err).Warn("Failed to invalidate cached listings")
	}
	return nil
}

func loadCatalogFile(path string) ([]models.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var games []models.Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("decode catalog file %s: %w", path, err)
	}
	return games, nil
}

func validateCatalog(games []models.Game) error {
	for i, g := range games {
		if err := utils.ValidateStruct(g); err != nil {
			return fmt.Errorf("listing %d (%q): %s", i, g.Title, utils.ValidationSummary(err))
		}
	}
	return nil
}
