// Package migrations embeds the SQL migration files so they can be used
// by the goose programmatic API in tests and server bootstrap.
// Each supported store dialect has its own directory.
package migrations

import (
	"embed"
	"io/fs"
)

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// Postgres returns the migrations for the Postgres store, rooted so goose
// sees the *.sql files at the top level.
func Postgres() fs.FS {
	return mustSub("postgres")
}

// SQLite returns the migrations for the SQLite store.
func SQLite() fs.FS {
	return mustSub("sqlite")
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(FS, dir)
	if err != nil {
		// Only reachable if the embed directive above is changed.
		panic("migrations: " + err.Error())
	}
	return sub
}
