package repo

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers "sqlite" driver for database/sql

	"github.com/pkordes/mileage-logbook/migrations"
)

// Store bundles the repositories of one backing database.
// Build it with OpenPostgres or OpenSQLite; both migrate the schema and seed
// the settings row before returning.
type Store struct {
	Trips    TripRepo
	Vehicles VehicleRepo
	Settings SettingsRepo

	ping  func(ctx context.Context) error
	close func() error
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases the underlying connections.
func (s *Store) Close() error {
	return s.close()
}

// OpenPostgres connects to Postgres, applies pending migrations and seeds the
// settings row.
func OpenPostgres(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenPostgres: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("repo.OpenPostgres: ping: %w", err)
	}

	// goose needs database/sql, so migrations run over a short-lived
	// connection through the pgx stdlib driver.
	migrateDB, err := sql.Open("pgx", dsn)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("repo.OpenPostgres: open migration db: %w", err)
	}
	defer migrateDB.Close()

	if err := Migrate(ctx, goose.DialectPostgres, migrateDB, migrations.Postgres(), logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("repo.OpenPostgres: %w", err)
	}

	s := &Store{
		Trips:    NewTripRepo(pool),
		Vehicles: NewVehicleRepo(pool),
		Settings: NewSettingsRepo(pool),
		ping:     pool.Ping,
		close: func() error {
			pool.Close()
			return nil
		},
	}
	if err := s.Settings.Seed(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("repo.OpenPostgres: %w", err)
	}
	return s, nil
}

// OpenSQLite opens (creating if needed) the SQLite database file at path,
// applies pending migrations and seeds the settings row.
func OpenSQLite(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: create db directory: %w", err)
	}

	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: open: %w", err)
	}
	// SQLite allows a single writer; one connection avoids SQLITE_BUSY
	// between pooled connections.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: ping: %w", err)
	}
	if err := Migrate(ctx, goose.DialectSQLite3, db, migrations.SQLite(), logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: %w", err)
	}

	s := &Store{
		Trips:    NewSQLiteTripRepo(db),
		Vehicles: NewSQLiteVehicleRepo(db),
		Settings: NewSQLiteSettingsRepo(db),
		ping:     db.PingContext,
		close:    db.Close,
	}
	if err := s.Settings.Seed(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: %w", err)
	}
	return s, nil
}

// Migrate applies every pending migration in fsys and logs each one applied.
func Migrate(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS, logger *slog.Logger) error {
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	for _, r := range results {
		logger.Info("migration applied",
			"version", r.Source.Version,
			"path", r.Source.Path,
			"duration", r.Duration,
		)
	}
	return nil
}
