package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/pkordes/mileage-logbook/internal/domain"
)

// sqlDB is the database/sql counterpart of db, satisfied by *sql.DB and *sql.Tx.
type sqlDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// mapSQLiteError is the SQLite counterpart of mapPgError.
func mapSQLiteError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %w", domain.ErrConflict, err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
	}
	return err
}

// sqliteTimeLayouts are the textual timestamp forms SQLite may hand back.
// CURRENT_TIMESTAMP produces the first one.
var sqliteTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	domain.DateLayout,
}

// sqliteTime scans a timestamp column whether the driver returns it as
// time.Time or as text.
type sqliteTime struct {
	t *time.Time
}

func (st sqliteTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*st.t = time.Time{}
		return nil
	case time.Time:
		*st.t = v.UTC()
		return nil
	case []byte:
		return st.parse(string(v))
	case string:
		return st.parse(v)
	}
	return fmt.Errorf("sqliteTime: unsupported source %T", src)
}

func (st sqliteTime) parse(s string) error {
	for _, layout := range sqliteTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*st.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("sqliteTime: cannot parse %q", s)
}

// sqliteDate scans a TEXT date column ("2006-01-02") into a time.Time.
type sqliteDate struct {
	t *time.Time
}

func (sd sqliteDate) Scan(src any) error {
	return sqliteTime(sd).Scan(src)
}

// formatDate renders a trip date in its SQLite storage form.
func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}
