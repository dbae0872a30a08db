package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const TrackerTableSchema = `
	CREATE TABLE IF NOT EXISTS tracker_items (
		title VARCHAR NOT NULL,
		status VARCHAR NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (title)
	);
`
const SnapshotTableSchema = `
	CREATE TABLE IF NOT EXISTS signal_snapshots (
		id VARCHAR NOT NULL,
		captured_at TIMESTAMP NOT NULL,
		payload JSON NOT NULL,
		PRIMARY KEY (id)
	);
`

var bootQueries = []string{
	TrackerTableSchema,
	SnapshotTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
