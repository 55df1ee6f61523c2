package metadata

import (
	"context"
	"database/sql"
	"errors"

	"github.com/samber/oops"

	"github.com/dmitrijs2005/lostfound/internal/dbx"
)

// SQLiteRepository implements Repository on the metadata table.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository binds a repository to a database or a transaction.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, oops.Code("METADATA_GET").With("key", key).Wrapf(err, "get metadata")
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return oops.Code("METADATA_SET").With("key", key).Wrapf(err, "set metadata")
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key); err != nil {
		return oops.Code("METADATA_DELETE").With("key", key).Wrapf(err, "delete metadata")
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM metadata`); err != nil {
		return oops.Code("METADATA_CLEAR").Wrapf(err, "clear metadata")
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM metadata`)
	if err != nil {
		return nil, oops.Code("METADATA_LIST").Wrapf(err, "list metadata")
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var (
			key   string
			value []byte
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, oops.Code("METADATA_LIST").Wrapf(err, "scan metadata row")
		}
		result[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("METADATA_LIST").Wrapf(err, "iterate metadata rows")
	}
	return result, nil
}
