package poll

import (
	"context"
	"fmt"
	"sync"
	"time"

	coremetrics "github.com/powerclass/marketctl/core/metrics"
	"github.com/powerclass/marketctl/infra/logger"
)

// Config defines polling intervals per resource, in seconds.
type Config struct {
	SessionSeconds    int `json:"session_seconds"`
	FinancialsSeconds int `json:"financials_seconds"`
	PlantsSeconds     int `json:"plants_seconds"`
	ResultsSeconds    int `json:"results_seconds"`
}

// SetDefaults applies the intervals used by the stock dashboards.
func (c *Config) SetDefaults() {
	if c.SessionSeconds <= 0 {
		c.SessionSeconds = 3
	}
	if c.FinancialsSeconds <= 0 {
		c.FinancialsSeconds = 5
	}
	if c.PlantsSeconds <= 0 {
		c.PlantsSeconds = 10
	}
	if c.ResultsSeconds <= 0 {
		c.ResultsSeconds = 10
	}
}

// Fetch refreshes one resource. Errors are logged and counted, never fatal to
// the poller.
type Fetch func(ctx context.Context) error

type poller struct {
	key      string
	interval time.Duration
	fetch    Fetch
	refs     int
	cancel   context.CancelFunc
	done     chan struct{}
}

// Manager deduplicates concurrent pollers for the same resource key. The
// first subscriber starts a ticker goroutine; later subscribers for the same
// key share it; the ticker stops when the last subscriber releases. A later
// subscriber's interval is ignored in favor of the running poller's.
type Manager struct {
	mu      sync.Mutex
	pollers map[string]*poller
	closed  bool
	log     logger.Logger
	sink    coremetrics.Sink
}

// NewManager creates a Manager. A nil sink disables metrics.
func NewManager(log logger.Logger, sink coremetrics.Sink) *Manager {
	if log == nil {
		log = logger.NopLogger{}
	}
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	return &Manager{pollers: make(map[string]*poller), log: log, sink: sink}
}

// Subscribe registers interest in a resource and returns a release function.
// The fetch runs once immediately, then on every tick.
func (m *Manager) Subscribe(key string, interval time.Duration, fetch Fetch) (release func(), err error) {
	if interval <= 0 {
		return nil, fmt.Errorf("poll %s: interval must be positive", key)
	}
	if fetch == nil {
		return nil, fmt.Errorf("poll %s: fetch is required", key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, fmt.Errorf("poll %s: manager closed", key)
	}
	p, ok := m.pollers[key]
	if !ok {
		ctx, cancel := context.WithCancel(context.Background())
		p = &poller{key: key, interval: interval, fetch: fetch, cancel: cancel, done: make(chan struct{})}
		m.pollers[key] = p
		go m.run(ctx, p)
	}
	p.refs++
	var once sync.Once
	return func() { once.Do(func() { m.release(key) }) }, nil
}

func (m *Manager) release(key string) {
	m.mu.Lock()
	p, ok := m.pollers[key]
	if !ok {
		m.mu.Unlock()
		return
	}
	p.refs--
	if p.refs > 0 {
		m.mu.Unlock()
		return
	}
	delete(m.pollers, key)
	m.mu.Unlock()
	p.cancel()
	<-p.done
}

func (m *Manager) run(ctx context.Context, p *poller) {
	defer close(p.done)
	m.tick(ctx, p)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick(ctx, p)
		}
	}
}

func (m *Manager) tick(ctx context.Context, p *poller) {
	start := time.Now()
	err := p.fetch(ctx)
	if err != nil && ctx.Err() == nil {
		m.log.Errorf("poll %s: %v", p.key, err)
	}
	_ = m.sink.RecordPoll(coremetrics.PollEvent{
		Resource: p.key,
		Failed:   err != nil,
		Duration: time.Since(start),
		Time:     start,
	})
}

// Active returns the number of distinct resources currently polled.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pollers)
}

// Close stops every poller and rejects further subscriptions.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	pollers := make([]*poller, 0, len(m.pollers))
	for _, p := range m.pollers {
		pollers = append(pollers, p)
	}
	m.pollers = make(map[string]*poller)
	m.mu.Unlock()
	for _, p := range pollers {
		p.cancel()
		<-p.done
	}
}
