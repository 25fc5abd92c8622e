// Package sqlite keeps records in a SQLite database. A region is a row in
// the regions table and each non-empty cell is a row in the cells table,
// so a record can be queried without opening a workbook.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/materials-commons/mcsqa/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS regions (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS cells (
	region TEXT NOT NULL,
	coord  TEXT NOT NULL,
	value  TEXT NOT NULL,
	PRIMARY KEY (region, coord)
);`

// Store is a store.Store on a SQLite database file.
type Store struct {
	db   *sql.DB
	path string
}

var (
	_ store.Store   = (*Store)(nil)
	_ store.Reader  = (*Store)(nil)
	_ store.Locator = (*Store)(nil)
)

// Open opens, creating if needed, the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, errors.Wrapf(err, "creating directory for %s", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening sqlite %s", path)
	}
	// One writer at a time, sqlite locks the whole file anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating tables")
	}

	return &Store{db: db, path: path}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureTemplate creates an empty template region if there isn't one
// called name already.
func (s *Store) EnsureTemplate(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO regions (name) VALUES (?)`, name); err != nil {
		return errors.Wrapf(err, "creating template %s", name)
	}
	return nil
}

func (s *Store) ListRegionNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM regions ORDER BY id`)
	if err != nil {
		return nil, store.Wrap(store.OpList, "", "", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, store.Wrap(store.OpList, "", "", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Wrap(store.OpList, "", "", err)
	}

	return names, nil
}

// DuplicateRegion creates the region and copies the template cells into it
// in one transaction.
func (s *Store) DuplicateRegion(ctx context.Context, template, name string) (region store.Region, retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Region{}, store.Wrap(store.OpDuplicate, name, "", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if ok, err := regionExists(ctx, tx, template); err != nil {
		return store.Region{}, store.Wrap(store.OpDuplicate, name, "", err)
	} else if !ok {
		return store.Region{}, store.Wrap(store.OpDuplicate, name, "", fmt.Errorf("template region '%s' not found", template))
	}

	if ok, err := regionExists(ctx, tx, name); err != nil {
		return store.Region{}, store.Wrap(store.OpDuplicate, name, "", err)
	} else if ok {
		return store.Region{}, store.Wrap(store.OpDuplicate, name, "", fmt.Errorf("region '%s' already exists", name))
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO regions (name) VALUES (?)`, name); err != nil {
		return store.Region{}, store.Wrap(store.OpDuplicate, name, "", err)
	}

	copyCells := `INSERT INTO cells (region, coord, value) SELECT ?, coord, value FROM cells WHERE region = ?`
	if _, err := tx.ExecContext(ctx, copyCells, name, template); err != nil {
		return store.Region{}, store.Wrap(store.OpDuplicate, name, "", err)
	}

	if err := tx.Commit(); err != nil {
		return store.Region{}, store.Wrap(store.OpDuplicate, name, "", err)
	}

	return store.Region{Name: name}, nil
}

// WriteCell stores the text form of value. A nil value removes the cell.
func (s *Store) WriteCell(ctx context.Context, region store.Region, coord store.Coordinate, value interface{}) error {
	if ok, err := regionExists(ctx, s.db, region.Name); err != nil {
		return store.Wrap(store.OpWrite, region.Name, coord, err)
	} else if !ok {
		return store.Wrap(store.OpWrite, region.Name, coord, fmt.Errorf("region not found"))
	}

	var err error
	if value == nil {
		_, err = s.db.ExecContext(ctx, `DELETE FROM cells WHERE region = ? AND coord = ?`, region.Name, string(coord))
	} else {
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO cells (region, coord, value) VALUES (?, ?, ?)
			 ON CONFLICT (region, coord) DO UPDATE SET value = excluded.value`,
			region.Name, string(coord), store.FormatValue(value))
	}
	if err != nil {
		return store.Wrap(store.OpWrite, region.Name, coord, err)
	}
	return nil
}

func (s *Store) DeleteRegion(ctx context.Context, region store.Region) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Wrap(store.OpDelete, region.Name, "", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.ExecContext(ctx, `DELETE FROM regions WHERE name = ?`, region.Name)
	if err != nil {
		return store.Wrap(store.OpDelete, region.Name, "", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return store.Wrap(store.OpDelete, region.Name, "", err)
	} else if n == 0 {
		return store.Wrap(store.OpDelete, region.Name, "", fmt.Errorf("region not found"))
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cells WHERE region = ?`, region.Name); err != nil {
		return store.Wrap(store.OpDelete, region.Name, "", err)
	}

	if err := tx.Commit(); err != nil {
		return store.Wrap(store.OpDelete, region.Name, "", err)
	}
	return nil
}

func (s *Store) ReadCell(ctx context.Context, region store.Region, coord store.Coordinate) (string, error) {
	if ok, err := regionExists(ctx, s.db, region.Name); err != nil {
		return "", store.Wrap(store.OpRead, region.Name, coord, err)
	} else if !ok {
		return "", store.Wrap(store.OpRead, region.Name, coord, fmt.Errorf("region not found"))
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM cells WHERE region = ? AND coord = ?`,
		region.Name, string(coord)).Scan(&value)
	switch {
	case err == sql.ErrNoRows:
		return "", nil
	case err != nil:
		return "", store.Wrap(store.OpRead, region.Name, coord, err)
	}
	return value, nil
}

// Location is "sqlite://{path}#{region}".
func (s *Store) Location(region store.Region) string {
	return fmt.Sprintf("sqlite://%s#%s", s.path, region.Name)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func regionExists(ctx context.Context, q querier, name string) (bool, error) {
	var count int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM regions WHERE name = ?`, name).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
