package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS surrogate_keys (
    entity      TEXT    NOT NULL,
    natural_key TEXT    NOT NULL,
    id          INTEGER NOT NULL,
    PRIMARY KEY (entity, natural_key),
    UNIQUE (entity, id)
)`

// SurrogateAllocator keeps natural key to ID assignments in a SQLite file so
// an entity keeps its ID across rebuilds. New entities get max(id)+1 in the
// order they are presented.
type SurrogateAllocator struct {
	db *sqlx.DB
}

func Open(ctx context.Context, path string) (*SurrogateAllocator, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create key registry dir: %w", err)
		}
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open key registry %s: %w", path, err)
	}
	// A single connection serializes writers on the file.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create key registry schema: %w", err)
	}
	return &SurrogateAllocator{db: db}, nil
}

func (a *SurrogateAllocator) Close() error {
	return a.db.Close()
}

type surrogateKeyModel struct {
	NaturalKey string `db:"natural_key"`
	ID         int64  `db:"id"`
}

func (a *SurrogateAllocator) Assign(ctx context.Context, entity string, naturalKeys []string) (map[string]int64, error) {
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx assign %s keys: %w", entity, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var existing []surrogateKeyModel
	if err := tx.SelectContext(ctx, &existing,
		`SELECT natural_key, id FROM surrogate_keys WHERE entity = ?`, entity); err != nil {
		return nil, fmt.Errorf("select %s keys: %w", entity, err)
	}

	known := make(map[string]int64, len(existing))
	var maxID int64
	for _, row := range existing {
		known[row.NaturalKey] = row.ID
		if row.ID > maxID {
			maxID = row.ID
		}
	}

	out := make(map[string]int64, len(naturalKeys))
	for _, key := range naturalKeys {
		if _, ok := out[key]; ok {
			continue
		}
		if id, ok := known[key]; ok {
			out[key] = id
			continue
		}
		maxID++
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO surrogate_keys (entity, natural_key, id) VALUES (?, ?, ?)`,
			entity, key, maxID); err != nil {
			return nil, fmt.Errorf("insert %s key %q: %w", entity, key, err)
		}
		known[key] = maxID
		out[key] = maxID
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit %s keys: %w", entity, err)
	}
	return out, nil
}
