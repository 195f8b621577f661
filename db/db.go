package db

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gamecatalog/config"
	"gamecatalog/models"
	"gamecatalog/utils"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is the catalog's handle on the relational backend. It owns a
// database/sql connection pool; callers never see connection lifecycles.
type Store struct {
	gdb            *gorm.DB
	dialect        string
	connectTimeout time.Duration
}

// Open connects to the backend described by cfg and verifies it is reachable
// within the configured connect timeout.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(postgresDSN(cfg))
	case "sqlite":
		dialector = sqlite.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, &ConnectionError{Op: "open", Err: err}
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, &ConnectionError{Op: "open", Err: err}
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	s := &Store{
		gdb:            gdb,
		dialect:        gdb.Dialector.Name(),
		connectTimeout: cfg.ConnectTimeout,
	}
	if err := s.Ping(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	utils.Log.WithFields(logrus.Fields{
		"driver":    s.dialect,
		"max_open":  cfg.MaxOpenConns,
		"max_idle":  cfg.MaxIdleConns,
		"tls":       cfg.SSL,
		"tlsVerify": cfg.SSLVerify,
	}).Info("Connected to catalog database")

	return s, nil
}

// Ping checks the backend is reachable, bounded by the connect timeout.
func (s *Store) Ping(ctx context.Context) error {
	if s.connectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.connectTimeout)
		defer cancel()
	}

	sqlDB, err := s.gdb.DB()
	if err != nil {
		return &ConnectionError{Op: "ping", Err: err}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return &ConnectionError{Op: "ping", Err: err}
	}
	return nil
}

// Dialect is the gorm dialect name of the backend ("postgres" or "sqlite").
func (s *Store) Dialect() string {
	return s.dialect
}

// Execute runs a parameterised statement and scans every row, in order, into
// dest (a pointer to a slice of structs or of map[string]interface{}). Values
// must be passed in args, positionally or as sql.Named, never spliced into
// sqlText. It returns the number of rows read.
func (s *Store) Execute(ctx context.Context, dest interface{}, sqlText string, args ...interface{}) (int64, error) {
	result := s.gdb.WithContext(ctx).Raw(sqlText, args...).Scan(dest)
	if result.Error != nil {
		return 0, classify("execute", result.Error)
	}
	return result.RowsAffected, nil
}

// Replace swaps the whole catalog for games in a single transaction. Only the
// seeding command writes to the table.
func (s *Store) Replace(ctx context.Context, games []models.Game) (int64, error) {
	err := s.gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM games").Error; err != nil {
			return err
		}
		if len(games) == 0 {
			return nil
		}
		// ids are always assigned by the backend
		rows := make([]models.Game, len(games))
		for i, g := range games {
			g.ID = 0
			rows[i] = g
		}
		return tx.CreateInBatches(rows, 100).Error
	})
	if err != nil {
		return 0, classify("replace", err)
	}
	return int64(len(games)), nil
}

// Close releases every pooled connection.
func (s *Store) Close() error {
	sqlDB, err := s.gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// postgresDSN applies the TLS toggle and connect timeout to either DSN form
// (URL or key=value).
func postgresDSN(cfg config.DatabaseConfig) string {
	sslMode := "disable"
	if cfg.SSL {
		sslMode = "require"
		if cfg.SSLVerify {
			sslMode = "verify-full"
		}
	}

	timeout := ""
	if cfg.ConnectTimeout > 0 {
		secs := int(cfg.ConnectTimeout.Round(time.Second) / time.Second)
		if secs < 1 {
			secs = 1
		}
		timeout = strconv.Itoa(secs)
	}

	dsn := strings.TrimSpace(cfg.URL)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err == nil {
			q := u.Query()
			q.Set("sslmode", sslMode)
			if timeout != "" {
				q.Set("connect_timeout", timeout)
			}
			u.RawQuery = q.Encode()
			return u.String()
		}
	}

	parts := make([]string, 0, 8)
	for _, field := range strings.Fields(dsn) {
		if strings.HasPrefix(field, "sslmode=") ||
			(timeout != "" && strings.HasPrefix(field, "connect_timeout=")) {
			continue
		}
		parts = append(parts, field)
	}
	parts = append(parts, "sslmode="+sslMode)
	if timeout != "" {
		parts = append(parts, "connect_timeout="+timeout)
	}
	return strings.Join(parts, " ")
}
