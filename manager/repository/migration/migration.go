// Package migration keeps the audit trail indexes in step with the code.
package migration

import (
	"embed"
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/edgeap/edgeap/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed mongodb/*.json
var mongoMigrations embed.FS

// DatabaseURL is the golang-migrate mongodb URL for cfg.
func DatabaseURL(cfg config.MongoDBConfig) string {
	u := url.URL{
		Scheme:   "mongodb",
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     "/" + cfg.Database,
		RawQuery: "authSource=admin",
	}
	if cfg.User != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password.Value())
	}
	return u.String()
}

func newMigrate(cfg config.MongoDBConfig) (*migrate.Migrate, error) {
	src, err := iofs.New(mongoMigrations, "mongodb")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, DatabaseURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("init migrate for %s: %w", cfg.Database, err)
	}
	return m, nil
}

// Up applies every pending migration.
func Up(cfg config.MongoDBConfig) (uint, error) {
	m, err := newMigrate(cfg)
	if err != nil {
		return 0, err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("migrate up: %w", err)
	}
	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("migration %d is dirty", version)
	}
	return version, nil
}

// Down reverts every migration.
func Down(cfg config.MongoDBConfig) error {
	m, err := newMigrate(cfg)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}
