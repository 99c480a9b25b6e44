package metrics

import (
	"time"

	"github.com/powerclass/marketctl/core/model"
)

// RequestEvent describes one API round trip made by the REST client.
type RequestEvent struct {
	Method    string
	Endpoint  string // route template, not the concrete URL
	Status    int    // 0 when the request never reached the server
	Duration  time.Duration
	RequestID string
	Time      time.Time
}

// PollEvent describes one tick of a resource poller.
type PollEvent struct {
	Resource string
	Failed   bool
	Duration time.Duration
	Time     time.Time
}

// PhaseEvent records an observed session phase transition.
type PhaseEvent struct {
	SessionID string
	From      model.GameState
	To        model.GameState
	Time      time.Time
}

// PriceObservation is a clearing price seen while polling market results.
type PriceObservation struct {
	SessionID       string
	Year            int
	Period          model.LoadPeriod
	ClearingPrice   float64
	ClearedQuantity float64
	TotalEnergy     float64
	Time            time.Time
}

// Sink records client observability events.
type Sink interface {
	RecordRequest(RequestEvent) error
	RecordPoll(PollEvent) error
	RecordPhase(PhaseEvent) error
	RecordPrices([]PriceObservation) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordRequest(RequestEvent) error     { return nil }
func (NopSink) RecordPoll(PollEvent) error           { return nil }
func (NopSink) RecordPhase(PhaseEvent) error         { return nil }
func (NopSink) RecordPrices([]PriceObservation) error { return nil }

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRequest forwards the event to all sinks, returning the first error.
func (m *MultiSink) RecordRequest(ev RequestEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordRequest(ev); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiSink) RecordPoll(ev PollEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordPoll(ev); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiSink) RecordPhase(ev PhaseEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordPhase(ev); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiSink) RecordPrices(obs []PriceObservation) error {
	for _, s := range m.Sinks {
		if err := s.RecordPrices(obs); err != nil {
			return err
		}
	}
	return nil
}
