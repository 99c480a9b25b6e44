package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/powerclass/marketctl/core/metrics"
	"github.com/powerclass/marketctl/core/model"
)

type recordingSink struct {
	coremetrics.NopSink
	events []coremetrics.RequestEvent
}

func (r *recordingSink) RecordRequest(ev coremetrics.RequestEvent) error {
	r.events = append(r.events, ev)
	return nil
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *recordingSink) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	sink := &recordingSink{}
	client, err := New(Config{BaseURL: srv.URL, TimeoutSeconds: 2}, nil, sink)
	require.NoError(t, err)
	return client, sink
}

func TestGetSession(t *testing.T) {
	client, sink := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/game-sessions/s1", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_ = json.NewEncoder(w).Encode(model.GameSession{
			ID: "s1", Name: "demo", State: model.StateBiddingOpen,
			StartYear: 2025, EndYear: 2035, CurrentYear: 2026,
		})
	}))

	sess, err := client.GetSession(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, model.StateBiddingOpen, sess.State)
	require.Len(t, sink.events, 1)
	assert.Equal(t, "/game-sessions/{id}", sink.events[0].Endpoint)
	assert.Equal(t, http.StatusOK, sink.events[0].Status)
}

func TestSessionScoped404MapsToSentinel(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Game session not found"})
	}))

	_, err := client.GetSession(context.Background(), "gone")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Game session not found", apiErr.Detail)
}

func TestCatalog404IsNotSessionInvalid(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Plant template not found"})
	}))

	_, err := client.GetPlantTemplate(context.Background(), model.PlantType("fusion"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}

func TestSubmitYearlyBidSendsBody(t *testing.T) {
	var received model.YearlyBid
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/game-sessions/s1/yearly-bids", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		received.ID = "b1"
		_ = json.NewEncoder(w).Encode(received)
	}))

	bid := model.YearlyBid{
		UtilityID: "u1", PlantID: "p1", Year: 2026,
		OffPeakQuantity: 80, ShoulderQuantity: 100, PeakQuantity: 100,
		OffPeakPrice: 22, ShoulderPrice: 35, PeakPrice: 60,
	}
	out, err := client.SubmitYearlyBid(context.Background(), "s1", bid)
	require.NoError(t, err)
	assert.Equal(t, "b1", out.ID)
	assert.Equal(t, 60.0, received.PeakPrice)
}

func TestEventEndpointsGatedByCapabilities(t *testing.T) {
	t.Run("not advertised", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				_ = json.NewEncoder(w).Encode(HealthResponse{Status: "healthy"})
				return
			}
			t.Errorf("unexpected call to %s", r.URL.Path)
		}))
		_, err := client.ListMarketEvents(context.Background(), "s1")
		assert.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("advertised", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/health":
				_ = json.NewEncoder(w).Encode(HealthResponse{Status: "healthy", Features: []string{"market_events"}})
			case "/game-sessions/s1/market-events":
				_ = json.NewEncoder(w).Encode([]model.MarketEvent{{ID: "e1", EventType: "fuel_shock"}})
			default:
				t.Errorf("unexpected call to %s", r.URL.Path)
			}
		}))
		events, err := client.ListMarketEvents(context.Background(), "s1")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "fuel_shock", events[0].EventType)
	})
}

func TestServerErrorSurfacesDetail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Insufficient budget for investment"})
	}))
	_, err := client.CreatePlant(context.Background(), "s1", "u1", CreatePlantRequest{
		Name: "Unit 1", PlantType: model.PlantNuclear, CapacityMW: 1000,
	})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Insufficient budget for investment", apiErr.Detail)
}

func TestRequestFailureRecordsZeroStatus(t *testing.T) {
	sink := &recordingSink{}
	client, err := New(Config{BaseURL: "http://127.0.0.1:1", TimeoutSeconds: 1}, nil, sink)
	require.NoError(t, err)
	_, err = client.Health(context.Background())
	require.Error(t, err)
	require.Len(t, sink.events, 1)
	assert.Zero(t, sink.events[0].Status)
}

func TestSimulateInvestmentQuery(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "u1", q.Get("utility_id"))
		assert.Equal(t, "solar", q.Get("plant_type"))
		assert.Equal(t, "250", q.Get("capacity_mw"))
		assert.Equal(t, "2027", q.Get("construction_start_year"))
		var sim InvestmentSimulation
		sim.FinancialImpact.BudgetSufficient = true
		_ = json.NewEncoder(w).Encode(sim)
	}))
	sim, err := client.SimulateInvestment(context.Background(), "s1", "u1", model.PlantSolar, 250, 2027)
	require.NoError(t, err)
	assert.True(t, sim.FinancialImpact.BudgetSufficient)
}
