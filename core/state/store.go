package state

import (
	"fmt"
	"sync"

	"github.com/powerclass/marketctl/core/model"
	"github.com/powerclass/marketctl/infra/persist"
	"github.com/powerclass/marketctl/internal/eventbus"
)

// ChangeKind classifies a store transition.
type ChangeKind string

const (
	// ChangePhase is emitted when the session moves to a new game phase.
	ChangePhase ChangeKind = "phase"
	// ChangeSessionCleared is emitted when the session is dropped, either by
	// an explicit logout or because the server no longer knows it.
	ChangeSessionCleared ChangeKind = "session_cleared"
	// ChangeSessionSelected is emitted when a session is stored for the first
	// time.
	ChangeSessionSelected ChangeKind = "session_selected"
)

// Change describes one store transition. The store itself performs no user
// notification; observers subscribe to Changes and decide what to surface.
type Change struct {
	Kind     ChangeKind
	Previous model.GameState
	Current  model.GameState
	Session  *model.GameSession
}

// Store holds the client-side view of the game: persisted identity (role,
// utility, last known session) plus non-persisted caches populated by polling.
// It performs no I/O besides snapshot persistence and is safe for concurrent
// use.
type Store struct {
	mu   sync.RWMutex
	snap persist.SnapshotStore
	bus  *eventbus.Bus[Change]

	role      model.Role
	utilityID string
	session   *model.GameSession

	plants     []model.PowerPlant
	bids       []model.YearlyBid
	financials *model.UtilityFinancials
	results    []model.MarketResult
}

// New creates a Store backed by the given snapshot store.
func New(snap persist.SnapshotStore) *Store {
	return &Store{snap: snap, bus: eventbus.New[Change]()}
}

// Load rehydrates identity from the snapshot store. Caches start empty; no
// server validation happens here, staleness is detected by whichever poller
// runs next.
func (s *Store) Load() error {
	snap, err := s.snap.Load()
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	s.mu.Lock()
	s.role = snap.Role
	s.utilityID = snap.UtilityID
	s.session = snap.CurrentSession
	s.plants = nil
	s.bids = nil
	s.financials = nil
	s.results = nil
	s.mu.Unlock()
	return nil
}

// Changes returns a subscription to store transitions.
func (s *Store) Changes() <-chan Change { return s.bus.Subscribe() }

// Unsubscribe releases a Changes subscription.
func (s *Store) Unsubscribe(ch <-chan Change) { s.bus.Unsubscribe(ch) }

// Close closes the change bus.
func (s *Store) Close() { s.bus.Close() }

// SetRole stores the selected role and persists.
func (s *Store) SetRole(r model.Role) error {
	s.mu.Lock()
	s.role = r
	snap := s.snapshotLocked()
	s.mu.Unlock()
	return s.persist(snap)
}

// SetUtilityID stores the selected utility and persists.
func (s *Store) SetUtilityID(id string) error {
	s.mu.Lock()
	s.utilityID = id
	snap := s.snapshotLocked()
	s.mu.Unlock()
	return s.persist(snap)
}

// SetCurrentSession stores the latest server-authoritative session. A nil
// session is treated as a logout and clears role and utility as well. When
// the phase label differs from the previously stored one, a Change describing
// the transition is returned and published; the store never notifies the user
// itself.
func (s *Store) SetCurrentSession(sess *model.GameSession) ([]Change, error) {
	s.mu.Lock()
	var changes []Change
	prev := s.session
	if sess == nil {
		var prevState model.GameState
		if prev != nil {
			prevState = prev.State
		}
		s.role = ""
		s.utilityID = ""
		s.session = nil
		changes = append(changes, Change{Kind: ChangeSessionCleared, Previous: prevState})
	} else {
		cp := *sess
		s.session = &cp
		switch {
		case prev == nil:
			changes = append(changes, Change{Kind: ChangeSessionSelected, Current: cp.State, Session: &cp})
		case prev.State != cp.State:
			changes = append(changes, Change{Kind: ChangePhase, Previous: prev.State, Current: cp.State, Session: &cp})
		}
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.persist(snap); err != nil {
		return changes, err
	}
	for _, c := range changes {
		s.bus.Publish(c)
	}
	return changes, nil
}

// Reset clears identity and caches and persists the empty snapshot. Used when
// the server reports the stored session gone.
func (s *Store) Reset() error {
	s.mu.Lock()
	s.role = ""
	s.utilityID = ""
	s.session = nil
	s.plants = nil
	s.bids = nil
	s.financials = nil
	s.results = nil
	s.mu.Unlock()
	if err := s.snap.Clear(); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	s.bus.Publish(Change{Kind: ChangeSessionCleared})
	return nil
}

func (s *Store) snapshotLocked() persist.Snapshot {
	snap := persist.Snapshot{Role: s.role, UtilityID: s.utilityID}
	if s.session != nil {
		cp := *s.session
		snap.CurrentSession = &cp
	}
	return snap
}

func (s *Store) persist(snap persist.Snapshot) error {
	if err := s.snap.Save(snap); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

// Role returns the selected role.
func (s *Store) Role() model.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// UtilityID returns the selected utility id.
func (s *Store) UtilityID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.utilityID
}

// CurrentSession returns a copy of the last known session, or nil.
func (s *Store) CurrentSession() *model.GameSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	cp := *s.session
	return &cp
}

// SetPlants replaces the plant cache.
func (s *Store) SetPlants(plants []model.PowerPlant) {
	s.mu.Lock()
	s.plants = append([]model.PowerPlant(nil), plants...)
	s.mu.Unlock()
}

// SetBids replaces the bid cache.
func (s *Store) SetBids(bids []model.YearlyBid) {
	s.mu.Lock()
	s.bids = append([]model.YearlyBid(nil), bids...)
	s.mu.Unlock()
}

// SetFinancials replaces the cached financial summary.
func (s *Store) SetFinancials(f *model.UtilityFinancials) {
	s.mu.Lock()
	if f == nil {
		s.financials = nil
	} else {
		cp := *f
		s.financials = &cp
	}
	s.mu.Unlock()
}

// Financials returns a copy of the cached financial summary, or nil.
func (s *Store) Financials() *model.UtilityFinancials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.financials == nil {
		return nil
	}
	cp := *s.financials
	return &cp
}

// AddMarketResults appends newly observed clearing results to the cache,
// skipping (year, period) pairs already present.
func (s *Store) AddMarketResults(results []model.MarketResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[[2]string]bool, len(s.results))
	for _, r := range s.results {
		seen[[2]string{fmt.Sprint(r.Year), string(r.Period)}] = true
	}
	for _, r := range results {
		key := [2]string{fmt.Sprint(r.Year), string(r.Period)}
		if seen[key] {
			continue
		}
		seen[key] = true
		s.results = append(s.results, r)
	}
}

// MarketResults returns a copy of the cached clearing results.
func (s *Store) MarketResults() []model.MarketResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.MarketResult(nil), s.results...)
}

// Plants returns a copy of the cached plants.
func (s *Store) Plants() []model.PowerPlant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.PowerPlant(nil), s.plants...)
}

// Bids returns a copy of the cached bids.
func (s *Store) Bids() []model.YearlyBid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.YearlyBid(nil), s.bids...)
}
