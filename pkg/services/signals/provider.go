package signals

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/de-tools/action-center/pkg/models/api"
	"github.com/de-tools/action-center/pkg/models/domain"
	storemodels "github.com/de-tools/action-center/pkg/models/store"
	signalstore "github.com/de-tools/action-center/pkg/store/duckdb/signals"
	trackerstore "github.com/de-tools/action-center/pkg/store/duckdb/tracker"
)

// Provider resolves one complete input snapshot for a model build. The engine
// accepts whatever a provider returns, including empty lists; fetch failures
// surface here, not inside the engine.
type Provider interface {
	Collect(ctx context.Context) (domain.SignalSet, error)
}

// Static returns a fixed snapshot. Used in tests and demos.
type Static struct {
	Set domain.SignalSet
}

func (s Static) Collect(_ context.Context) (domain.SignalSet, error) {
	return s.Set, nil
}

type fileProvider struct {
	path string
}

// NewFileProvider reads a snapshot from a JSON file in the wire format.
func NewFileProvider(path string) Provider {
	return &fileProvider{path: path}
}

func (p *fileProvider) Collect(_ context.Context) (domain.SignalSet, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return domain.SignalSet{}, fmt.Errorf("read snapshot file: %w", err)
	}

	var req api.BuildRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return domain.SignalSet{}, fmt.Errorf("parse snapshot file %s: %w", p.path, err)
	}
	return req.ToDomain(), nil
}

type storeProvider struct {
	snapshots signalstore.Store
	tracker   trackerstore.Store
}

// NewStoreProvider builds snapshots from the latest persisted detector capture,
// with tracker items layered in from the tracker store.
func NewStoreProvider(snapshots signalstore.Store, tracker trackerstore.Store) Provider {
	return &storeProvider{snapshots: snapshots, tracker: tracker}
}

func (p *storeProvider) Collect(ctx context.Context) (domain.SignalSet, error) {
	snapshot, err := p.snapshots.Latest(ctx)
	if err != nil {
		return domain.SignalSet{}, fmt.Errorf("load latest signal snapshot: %w", err)
	}

	var req api.BuildRequest
	if snapshot != nil {
		if err := json.Unmarshal(snapshot.Payload, &req); err != nil {
			return domain.SignalSet{}, fmt.Errorf("parse signal snapshot %s: %w", snapshot.ID, err)
		}
	}
	set := req.ToDomain()

	items, err := p.tracker.List(ctx)
	if err != nil {
		return domain.SignalSet{}, fmt.Errorf("load tracker items: %w", err)
	}
	set.TrackerItems = trackerItems(items)

	return set, nil
}

func trackerItems(items []storemodels.TrackerItem) []domain.TrackerItem {
	var out []domain.TrackerItem
	for _, item := range items {
		out = append(out, domain.TrackerItem{Title: item.Title, Status: item.Status})
	}
	return out
}
