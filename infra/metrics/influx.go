package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/powerclass/marketctl/core/metrics"
	"github.com/powerclass/marketctl/infra/logger"
)

// InfluxSink writes observed market data and request latencies to an InfluxDB
// instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	client := influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a NopSink
// if the health check fails, so a dead Influx never blocks the client.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRequest writes one api_request point.
func (s *InfluxSink) RecordRequest(ev coremetrics.RequestEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("api_request").
		AddTag("method", ev.Method).
		AddTag("endpoint", ev.Endpoint).
		AddTag("status", strconv.Itoa(ev.Status)).
		AddField("duration_ms", float64(ev.Duration)/float64(time.Millisecond)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordPoll writes one poll_tick point.
func (s *InfluxSink) RecordPoll(ev coremetrics.PollEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("poll_tick").
		AddTag("resource", ev.Resource).
		AddTag("failed", strconv.FormatBool(ev.Failed)).
		AddField("duration_ms", float64(ev.Duration)/float64(time.Millisecond)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordPhase writes one phase_transition point.
func (s *InfluxSink) RecordPhase(ev coremetrics.PhaseEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("phase_transition").
		AddTag("session_id", ev.SessionID).
		AddTag("from", string(ev.From)).
		AddTag("to", string(ev.To)).
		AddField("count", 1).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordPrices writes observed clearing prices as clearing_price points.
func (s *InfluxSink) RecordPrices(obs []coremetrics.PriceObservation) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, o := range obs {
		p := write.NewPointWithMeasurement("clearing_price").
			AddTag("session_id", o.SessionID).
			AddTag("period", string(o.Period)).
			AddTag("year", strconv.Itoa(o.Year)).
			AddField("price_per_mwh", o.ClearingPrice).
			AddField("cleared_quantity_mw", o.ClearedQuantity).
			AddField("total_energy_mwh", o.TotalEnergy).
			SetTime(o.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
