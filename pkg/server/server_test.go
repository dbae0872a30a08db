package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/de-tools/action-center/pkg/models/api"
	"github.com/de-tools/action-center/pkg/models/domain"
	storemodels "github.com/de-tools/action-center/pkg/models/store"
	"github.com/de-tools/action-center/pkg/services/actioncenter"
	"github.com/de-tools/action-center/pkg/services/signals"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	trackerStore := new(mockTrackerStore)
	trackerStore.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	provider := signals.Static{Set: domain.SignalSet{
		Opportunities: []domain.RawOpportunity{
			{ID: "opp-1", Title: "Idle EC2 Cleanup", Savings: 1800, AffectedResources: 4},
		},
	}}

	router := ConfigureRouter(logger, Dependencies{
		Engine:   actioncenter.NewEngine(actioncenter.DefaultTables()),
		Provider: provider,
		Tracker:  trackerStore,
	})
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	t.Run("GET model from provider", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/api/v1/action-center/model")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var model api.ActionCenterModel
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&model))
		require.Len(t, model.Opportunities, 1)
		assert.Equal(t, "Idle EC2 Cleanup", model.Opportunities[0].Title)
	})

	t.Run("POST model with inline input", func(t *testing.T) {
		body := api.BuildRequest{
			Opportunities: []api.RawOpportunity{
				{ID: "opp-9", Title: "Commitment coverage gap", Savings: 5000},
			},
		}
		payload, err := json.Marshal(body)
		require.NoError(t, err)

		resp, err := http.Post(
			testServer.URL+"/api/v1/action-center/model",
			"application/json",
			bytes.NewReader(payload),
		)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var model api.ActionCenterModel
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&model))
		require.Len(t, model.Opportunities, 1)
		assert.Equal(t, domain.SourceCommitment, model.Opportunities[0].SourceType)
	})

	t.Run("POST malformed body", func(t *testing.T) {
		resp, err := http.Post(
			testServer.URL+"/api/v1/action-center/model",
			"application/json",
			bytes.NewReader([]byte(`{"opportunities": 1}`)),
		)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("PUT tracker items", func(t *testing.T) {
		payload := []byte(`[{"title": "Idle EC2 Cleanup", "status": "Done"}]`)
		req, err := http.NewRequest(
			http.MethodPut,
			testServer.URL+"/api/v1/action-center/tracker",
			bytes.NewReader(payload),
		)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}
