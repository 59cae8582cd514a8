package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var files embed.FS

var ErrMigrate = errors.New("migrations: failed to apply migrations")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Up применяет все новые миграции к базе
func Up(db *sql.DB, log Logger) error {
	src, err := iofs.New(files, "sql")
	if err != nil {
		return fmt.Errorf("%w: open embedded source: %v", ErrMigrate, err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("%w: create postgres driver: %v", ErrMigrate, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("%w: create migrate instance: %v", ErrMigrate, err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Migrations: schema is up to date")
			return nil
		}
		return fmt.Errorf("%w: %v", ErrMigrate, err)
	}

	version, _, _ := m.Version()
	log.Info("Migrations: applied, version=%d", version)
	return nil
}
