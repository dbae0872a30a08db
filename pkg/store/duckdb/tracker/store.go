package tracker

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/action-center/pkg/models/store"
)

// Store persists tracker items, the manually curated workflow overrides that
// win over hash-derived stage defaults during a model build.
type Store interface {
	Upsert(ctx context.Context, items []store.TrackerItem) error
	List(ctx context.Context) ([]store.TrackerItem, error)
}

type trackerStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &trackerStore{db: db}, nil
}

func (s *trackerStore) Upsert(ctx context.Context, items []store.TrackerItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO tracker_items (title, status, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (title) DO UPDATE SET status = excluded.status, updated_at = excluded.updated_at`

	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		updatedAt := item.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = time.Now().UTC()
		}
		if _, err := stmt.ExecContext(ctx, item.Title, item.Status, updatedAt); err != nil {
			return fmt.Errorf("upsert tracker item %q: %w", item.Title, err)
		}
	}
	return nil
}

func (s *trackerStore) List(ctx context.Context) ([]store.TrackerItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT title, status, updated_at FROM tracker_items ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("query tracker items: %w", err)
	}
	defer rows.Close()

	var items []store.TrackerItem
	for rows.Next() {
		var item store.TrackerItem
		if err := rows.Scan(&item.Title, &item.Status, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tracker item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
