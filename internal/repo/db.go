// Package repo contains all database access logic for the mileage logbook.
// Each resource has its own file with an interface and a Postgres
// implementation; the *_sqlite.go files hold the SQLite implementations of the
// same interfaces. Only SQL and type mapping live here.
package repo

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/pkordes/mileage-logbook/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows, allowing
// the scan helpers to be reused for single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

// Postgres SQLSTATE codes mapped onto domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapPgError translates constraint violations into domain sentinels and
// pgx.ErrNoRows into domain.ErrNotFound. Other errors pass through unchanged.
func mapPgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %w", domain.ErrConflict, err)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
	}
	return err
}

// toNumeric converts a decimal into the pgtype used for NUMERIC parameters.
func toNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// fromNumeric converts a scanned NUMERIC into a decimal. NULL and NaN map to zero.
func fromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.NaN || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(new(big.Int).Set(n.Int), n.Exp)
}
