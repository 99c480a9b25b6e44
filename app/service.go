package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/powerclass/marketctl/config"
	"github.com/powerclass/marketctl/core/actionlog"
	coremetrics "github.com/powerclass/marketctl/core/metrics"
	"github.com/powerclass/marketctl/core/poll"
	"github.com/powerclass/marketctl/core/state"
	"github.com/powerclass/marketctl/infra/logger"
	"github.com/powerclass/marketctl/infra/metrics"
	"github.com/powerclass/marketctl/infra/persist"
	"github.com/powerclass/marketctl/infra/rest"
)

// Service wires the persisted store, the REST client, the pollers and the
// observability sinks into one unit the commands operate on.
type Service struct {
	Store   *state.Store
	API     *rest.Client
	Poll    *poll.Manager
	Actions actionlog.Store

	cfg  *config.Config
	log  logger.Logger
	sink coremetrics.Sink

	releases map[string]func()
}

// New creates a Service from the configuration and rehydrates the persisted
// session snapshot.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("marketctl")

	var sinks []coremetrics.Sink
	if cfg.Metrics.Prometheus.Enabled {
		sink, err := metrics.NewPromSink(prometheus.DefaultRegisterer)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.Influx.Enabled {
		ic := cfg.Metrics.Influx
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(ic.URL, ic.Token, ic.Org, ic.Bucket))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = coremetrics.NewMultiSink(sinks...)
	}

	snap, err := persist.NewFileStore(cfg.Store.SnapshotPath)
	if err != nil {
		return nil, fmt.Errorf("snapshot store: %w", err)
	}
	store := state.New(snap)
	if err := store.Load(); err != nil {
		logg.Warnf("snapshot unreadable, starting clean: %v", err)
		if rerr := store.Reset(); rerr != nil {
			return nil, fmt.Errorf("reset snapshot: %w", rerr)
		}
	}

	api, err := rest.New(cfg.API, logg, sink)
	if err != nil {
		return nil, fmt.Errorf("rest client: %w", err)
	}
	actions, err := actionlog.New(cfg.ActionLog)
	if err != nil {
		return nil, fmt.Errorf("action log: %w", err)
	}

	return &Service{
		Store:    store,
		API:      api,
		Poll:     poll.NewManager(logg, sink),
		Actions:  actions,
		cfg:      cfg,
		log:      logg,
		sink:     sink,
		releases: make(map[string]func()),
	}, nil
}

// Config returns the loaded configuration.
func (s *Service) Config() *config.Config { return s.cfg }

// Logger returns the service logger.
func (s *Service) Logger() logger.Logger { return s.log }

// Run starts the pollers for the persisted session and blocks until the
// context is cancelled. Phase transitions and session loss are reported
// through the store's change feed and mirrored to the log and the sinks.
func (s *Service) Run(ctx context.Context) error {
	ch := s.Store.Changes()
	defer s.Store.Unsubscribe(ch)

	if s.cfg.Metrics.Prometheus.Enabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.Prometheus.Address); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	if s.Store.CurrentSession() != nil {
		s.startPollers()
	} else {
		s.log.Infof("no session selected, waiting")
	}

	for {
		select {
		case <-ctx.Done():
			s.stopPollers()
			return nil
		case c, ok := <-ch:
			if !ok {
				return nil
			}
			s.onChange(c)
		}
	}
}

func (s *Service) onChange(c state.Change) {
	switch c.Kind {
	case state.ChangeSessionSelected:
		s.log.Infof("session selected: %s", c.Current.Label())
		s.startPollers()
	case state.ChangeSessionCleared:
		s.log.Warnf("session no longer exists on the server, local state cleared")
		s.stopPollers()
	case state.ChangePhase:
		s.log.Infof("phase changed: %s", c.Current.Label())
		ev := coremetrics.PhaseEvent{From: c.Previous, To: c.Current}
		if c.Session != nil {
			ev.SessionID = c.Session.ID
		}
		if err := s.sink.RecordPhase(ev); err != nil {
			s.log.Debugf("record phase: %v", err)
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.stopPollers()
	s.Poll.Close()
	s.Store.Close()
	if closer, ok := s.sink.(interface{ Close() }); ok {
		closer.Close()
	}
	return s.Actions.Close()
}
