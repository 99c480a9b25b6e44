package actionlog

import (
	"context"
	"fmt"
	"time"
)

// Action classifies a side-effecting submission sent to the backend.
type Action string

const (
	ActionBidSubmitted    Action = "bid_submitted"
	ActionPlantBuilt      Action = "plant_built"
	ActionPlantRetired    Action = "plant_retired"
	ActionMaintenanceSet  Action = "maintenance_scheduled"
	ActionStateCommand    Action = "state_command"
	ActionEventTriggered  Action = "event_triggered"
	ActionPortfolioAssign Action = "portfolio_assigned"
)

// Record captures one submission and its outcome. The journal is the client's
// own audit trail; the server remains authoritative for game state.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
	Action    Action    `json:"action"`
	SessionID string    `json:"session_id"`
	UtilityID string    `json:"utility_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Err       string    `json:"error,omitempty"`
}

// Query defines filters for retrieving records.
type Query struct {
	Start     time.Time
	End       time.Time
	Action    Action
	SessionID string
}

// matches reports whether the record passes every set filter.
func (q Query) matches(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Action != "" && r.Action != q.Action {
		return false
	}
	if q.SessionID != "" && r.SessionID != q.SessionID {
		return false
	}
	return true
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// Config defines settings for the action journal.
type Config struct {
	// Backend selects the store type: "jsonl" or "rotating".
	Backend string `json:"backend"`
	// Path is the file location of the journal.
	Path string `json:"path"`
	// MaxSizeMB triggers rotation when the file exceeds this size in megabytes.
	MaxSizeMB int `json:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int `json:"max_age_days"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" {
		c.Path = "actions.log"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Backend != "jsonl" && c.Backend != "rotating" {
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

// New creates the configured store.
func New(cfg Config) (Store, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Backend == "rotating" {
		return NewRotatingJSONLStore(cfg.Path, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
	}
	return NewJSONLStore(cfg.Path)
}
