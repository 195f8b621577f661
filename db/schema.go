package db

import (
	"context"
	"errors"
	"fmt"

	"gamecatalog/models"
	"gamecatalog/utils"

	"github.com/sirupsen/logrus"
)

// TrigramExtension backs future fuzzy matching. Search works without it.
const TrigramExtension = "pg_trgm"

var catalogIndexes = []string{"idx_title", "idx_platform"}

var errNoExtensions = errors.New("backend does not support extensions")

// EnsureSchema creates the games table and its indexes if they are missing,
// then tries to enable the trigram extension. It is safe to call on every
// start. Table and index failures are returned; the extension step only logs.
func (s *Store) EnsureSchema(ctx context.Context) error {
	m := s.gdb.WithContext(ctx).Migrator()

	if !m.HasTable(&models.Game{}) {
		if err := m.CreateTable(&models.Game{}); err != nil {
			return classify("create table games", err)
		}
		utils.Log.Info("Created games table")
	}

	for _, name := range catalogIndexes {
		if m.HasIndex(&models.Game{}, name) {
			continue
		}
		if err := m.CreateIndex(&models.Game{}, name); err != nil {
			return classify(fmt.Sprintf("create index %s", name), err)
		}
		utils.Log.WithField("index", name).Info("Created catalog index")
	}

	if err := s.enableExtension(ctx, TrigramExtension); err != nil {
		utils.Log.WithFields(logrus.Fields{
			"extension": TrigramExtension,
			"error":     err.Error(),
		}).Warn("Trigram extension not available, search uses substring matching only")
	} else {
		utils.Log.WithField("extension", TrigramExtension).Info("Trigram extension enabled")
	}

	utils.Log.Info("Catalog schema ready")
	return nil
}

// enableExtension is the non-fatal part of the bootstrap.
func (s *Store) enableExtension(ctx context.Context, name string) error {
	if s.dialect != "postgres" {
		return &ExtensionUnavailableError{Extension: name, Err: errNoExtensions}
	}
	stmt := fmt.Sprintf("CREATE EXTENSION IF NOT EXISTS %s", name)
	if err := s.gdb.WithContext(ctx).Exec(stmt).Error; err != nil {
		return &ExtensionUnavailableError{Extension: name, Err: err}
	}
	return nil
}
