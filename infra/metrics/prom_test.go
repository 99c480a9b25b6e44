package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/powerclass/marketctl/core/metrics"
	"github.com/powerclass/marketctl/core/model"
)

func TestPromSinkRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordRequest(coremetrics.RequestEvent{
		Method: "GET", Endpoint: "/game-sessions/{id}", Status: 200,
		Duration: 20 * time.Millisecond, Time: time.Now(),
	}))
	require.NoError(t, sink.RecordPoll(coremetrics.PollEvent{Resource: "session", Failed: true}))
	require.NoError(t, sink.RecordPhase(coremetrics.PhaseEvent{To: model.StateBiddingOpen}))
	require.NoError(t, sink.RecordPrices([]coremetrics.PriceObservation{
		{Year: 2026, Period: model.PeriodPeak, ClearingPrice: 61.5},
	}))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["marketctl_api_requests_total"])
	assert.True(t, names["marketctl_api_request_duration_seconds"])
	assert.True(t, names["marketctl_poll_ticks_total"])
	assert.True(t, names["marketctl_phase_transitions_total"])
	assert.True(t, names["marketctl_clearing_price_dollars_per_mwh"])
}

func TestPromSinkReregister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromSink(reg)
	require.NoError(t, err)
	// A second registration on the same registry reuses the collectors.
	sink, err := NewPromSink(reg)
	require.NoError(t, err)
	assert.NoError(t, sink.RecordPoll(coremetrics.PollEvent{Resource: "plants"}))
}
