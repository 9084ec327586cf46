package twitter

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

const idCacheSchema = `
CREATE TABLE IF NOT EXISTS query_ids (
	operation TEXT PRIMARY KEY,
	query_id TEXT NOT NULL,
	fetched_at INTEGER NOT NULL
);`

// QueryIDCache persists the refreshed query id overlay across process runs,
// so a fresh invocation doesn't start from defaults that may have rotated
// out weeks ago.
type QueryIDCache struct {
	db *sql.DB
}

func OpenQueryIDCache(path string) (*QueryIDCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(idCacheSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &QueryIDCache{db: db}, nil
}

func (c *QueryIDCache) Load(ctx context.Context) (map[string]string, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT operation, query_id FROM query_ids`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := map[string]string{}
	for rows.Next() {
		var operation, queryID string
		if err := rows.Scan(&operation, &queryID); err != nil {
			return nil, err
		}
		ids[operation] = queryID
	}
	return ids, rows.Err()
}

func (c *QueryIDCache) Save(ctx context.Context, ids map[string]string) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for operation, queryID := range ids {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO query_ids (operation, query_id, fetched_at) VALUES (?, ?, ?)
			 ON CONFLICT (operation) DO UPDATE SET query_id = excluded.query_id, fetched_at = excluded.fetched_at`,
			operation, queryID, now,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (c *QueryIDCache) Close() error {
	return c.db.Close()
}
