package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/powerclass/marketctl/core/metrics"
)

// PromSink records client activity in Prometheus metrics.
type PromSink struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	polls    *prometheus.CounterVec
	phases   *prometheus.CounterVec
	prices   *prometheus.GaugeVec
}

// NewPromSink registers client metrics on the provided Prometheus registerer.
// If reg is nil, the default registerer is used. If the collectors are already
// registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "marketctl_api_requests_total",
		Help: "Total number of API requests issued",
	}, []string{"method", "endpoint", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "marketctl_api_request_duration_seconds",
		Help:    "API round-trip latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"})
	polls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "marketctl_poll_ticks_total",
		Help: "Poller ticks by resource and outcome",
	}, []string{"resource", "result"})
	phases := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "marketctl_phase_transitions_total",
		Help: "Observed session phase transitions",
	}, []string{"to"})
	prices := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "marketctl_clearing_price_dollars_per_mwh",
		Help: "Last observed clearing price per year and load period",
	}, []string{"year", "period"})

	collectors := []prometheus.Collector{requests, latency, polls, phases, prices}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			collectors[i] = are.ExistingCollector
		}
	}
	return &PromSink{
		requests: collectors[0].(*prometheus.CounterVec),
		latency:  collectors[1].(*prometheus.HistogramVec),
		polls:    collectors[2].(*prometheus.CounterVec),
		phases:   collectors[3].(*prometheus.CounterVec),
		prices:   collectors[4].(*prometheus.GaugeVec),
	}, nil
}

// RecordRequest increments the request counter and latency histogram.
func (s *PromSink) RecordRequest(ev coremetrics.RequestEvent) error {
	s.requests.WithLabelValues(ev.Method, ev.Endpoint, strconv.Itoa(ev.Status)).Inc()
	s.latency.WithLabelValues(ev.Method, ev.Endpoint).Observe(ev.Duration.Seconds())
	return nil
}

// RecordPoll counts one poller tick.
func (s *PromSink) RecordPoll(ev coremetrics.PollEvent) error {
	result := "ok"
	if ev.Failed {
		result = "error"
	}
	s.polls.WithLabelValues(ev.Resource, result).Inc()
	return nil
}

// RecordPhase counts one observed phase transition.
func (s *PromSink) RecordPhase(ev coremetrics.PhaseEvent) error {
	s.phases.WithLabelValues(string(ev.To)).Inc()
	return nil
}

// RecordPrices sets the clearing price gauges.
func (s *PromSink) RecordPrices(obs []coremetrics.PriceObservation) error {
	for _, o := range obs {
		s.prices.WithLabelValues(strconv.Itoa(o.Year), string(o.Period)).Set(o.ClearingPrice)
	}
	return nil
}
