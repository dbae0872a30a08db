package signals

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/action-center/pkg/models/store"
)

// Store keeps captured detector snapshots; the model endpoint builds from the
// most recent one. The computed model itself is never written back.
type Store interface {
	Add(ctx context.Context, snapshot store.SignalSnapshot) error
	Latest(ctx context.Context) (*store.SignalSnapshot, error)
}

type snapshotStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &snapshotStore{db: db}, nil
}

func (s *snapshotStore) Add(ctx context.Context, snapshot store.SignalSnapshot) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO signal_snapshots (id, captured_at, payload) VALUES (?, ?, ?)`,
		snapshot.ID, snapshot.CapturedAt, string(snapshot.Payload),
	)
	if err != nil {
		return fmt.Errorf("insert signal snapshot %q: %w", snapshot.ID, err)
	}
	return nil
}

func (s *snapshotStore) Latest(ctx context.Context) (*store.SignalSnapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, captured_at, payload FROM signal_snapshots ORDER BY captured_at DESC LIMIT 1`)

	var snapshot store.SignalSnapshot
	var payload string
	err := row.Scan(&snapshot.ID, &snapshot.CapturedAt, &payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan signal snapshot: %w", err)
	}
	snapshot.Payload = []byte(payload)
	return &snapshot, nil
}
