package actioncenter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/action-center/pkg/models/api"
	"github.com/de-tools/action-center/pkg/models/domain"
	storemodels "github.com/de-tools/action-center/pkg/models/store"
	acengine "github.com/de-tools/action-center/pkg/services/actioncenter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Collect(ctx context.Context) (domain.SignalSet, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.SignalSet), args.Error(1)
}

type mockTrackerStore struct {
	mock.Mock
}

func (m *mockTrackerStore) Upsert(ctx context.Context, items []storemodels.TrackerItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *mockTrackerStore) List(ctx context.Context) ([]storemodels.TrackerItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]storemodels.TrackerItem), args.Error(1)
}

func newTestHandler(provider *mockProvider, trackerStore *mockTrackerStore) *Handler {
	h := NewHandler(acengine.NewEngine(acengine.DefaultTables()), provider, trackerStore)
	h.now = func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return h
}

func TestBuildModel(t *testing.T) {
	h := newTestHandler(new(mockProvider), new(mockTrackerStore))

	body := `{
		"opportunities": [
			{"id": "opp-1", "title": "Idle EC2 Cleanup", "savings": 1000, "affectedResources": 5}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/action-center/model", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.BuildModel(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var model api.ActionCenterModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &model))
	require.Len(t, model.Opportunities, 1)
	assert.Equal(t, domain.SourceIdle, model.Opportunities[0].SourceType)
	assert.Len(t, model.AnomalyBridgeCards, 3)
	assert.Equal(t, "USD", model.Meta.Currency)
}

func TestBuildModel_InvalidInput(t *testing.T) {
	h := newTestHandler(new(mockProvider), new(mockTrackerStore))

	cases := []string{
		`{"opportunities": "not-a-list"}`,
		`not json at all`,
		`{"idleResources": 42}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/action-center/model", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.BuildModel(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
		assert.Contains(t, rec.Body.String(), "invalid input")
	}
}

func TestBuildModel_EmptyBodyObject(t *testing.T) {
	h := newTestHandler(new(mockProvider), new(mockTrackerStore))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/action-center/model", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.BuildModel(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var model api.ActionCenterModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &model))
	assert.Empty(t, model.TopRanked)
	assert.Len(t, model.AnomalyBridgeCards, 3)
}

func TestGetModel(t *testing.T) {
	provider := new(mockProvider)
	provider.On("Collect", mock.Anything).Return(domain.SignalSet{
		Opportunities: []domain.RawOpportunity{
			{ID: "opp-1", Title: "Right-size search fleet", Savings: 4200},
		},
	}, nil)

	h := newTestHandler(provider, new(mockTrackerStore))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/action-center/model", nil)
	rec := httptest.NewRecorder()

	h.GetModel(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var model api.ActionCenterModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &model))
	require.Len(t, model.Opportunities, 1)
	provider.AssertExpectations(t)
}

func TestGetModel_UpstreamUnavailable(t *testing.T) {
	provider := new(mockProvider)
	provider.On("Collect", mock.Anything).Return(domain.SignalSet{}, fmt.Errorf("connection refused"))

	h := newTestHandler(provider, new(mockTrackerStore))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/action-center/model", nil)
	rec := httptest.NewRecorder()

	h.GetModel(rec, req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestUpsertTracker(t *testing.T) {
	trackerStore := new(mockTrackerStore)
	trackerStore.On("Upsert", mock.Anything, mock.MatchedBy(func(items []storemodels.TrackerItem) bool {
		return len(items) == 1 && items[0].Title == "Idle EC2 Cleanup" && items[0].Status == "In progress"
	})).Return(nil)

	h := newTestHandler(new(mockProvider), trackerStore)
	body := `[{"title": "Idle EC2 Cleanup", "status": "In progress"}]`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/action-center/tracker", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.UpsertTracker(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	trackerStore.AssertExpectations(t)
}

func TestUpsertTracker_InvalidInput(t *testing.T) {
	h := newTestHandler(new(mockProvider), new(mockTrackerStore))

	req := httptest.NewRequest(http.MethodPut, "/api/v1/action-center/tracker", strings.NewReader(`{"title": "x"}`))
	rec := httptest.NewRecorder()

	h.UpsertTracker(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
