package actioncenter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/de-tools/action-center/pkg/models/api"
	storemodels "github.com/de-tools/action-center/pkg/models/store"
	"github.com/de-tools/action-center/pkg/services/actioncenter"
	"github.com/de-tools/action-center/pkg/services/signals"
	"github.com/de-tools/action-center/pkg/store/duckdb/tracker"
	"github.com/rs/zerolog"
)

type Handler struct {
	engine   *actioncenter.Engine
	provider signals.Provider
	tracker  tracker.Store
	now      func() time.Time
}

func NewHandler(engine *actioncenter.Engine, provider signals.Provider, trackerStore tracker.Store) *Handler {
	return &Handler{
		engine:   engine,
		provider: provider,
		tracker:  trackerStore,
		now:      time.Now,
	}
}

// BuildModel computes the model from the input lists in the request body.
// A malformed body is the one legitimate error case; the engine itself accepts
// anything structurally valid, including empty lists.
func (h *Handler) BuildModel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.BuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn().Err(err).Msg("rejected malformed model request")
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	model := h.engine.Build(req.ToDomain(), h.now())
	writeJSON(w, logger, model)
}

// GetModel computes the model from the latest stored detector snapshot.
func (h *Handler) GetModel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	set, err := h.provider.Collect(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to collect signals")
		http.Error(w, "upstream signals unavailable", http.StatusBadGateway)
		return
	}

	model := h.engine.Build(set, h.now())
	writeJSON(w, logger, model)
}

// UpsertTracker stores workflow overrides that later builds pick up.
func (h *Handler) UpsertTracker(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var items []api.TrackerItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		logger.Warn().Err(err).Msg("rejected malformed tracker request")
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	records := make([]storemodels.TrackerItem, 0, len(items))
	updatedAt := h.now().UTC()
	for _, item := range items {
		records = append(records, storemodels.TrackerItem{
			Title:     item.Title,
			Status:    item.Status,
			UpdatedAt: updatedAt,
		})
	}

	if err := h.tracker.Upsert(ctx, records); err != nil {
		logger.Error().Err(err).Msg("failed to upsert tracker items")
		http.Error(w, "failed to store tracker items", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
