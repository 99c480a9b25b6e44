package model

import "time"

// GameState is the phase label of a running game session.
type GameState string

const (
	StateSetup          GameState = "setup"
	StateYearPlanning   GameState = "year_planning"
	StateBiddingOpen    GameState = "bidding_open"
	StateMarketClearing GameState = "market_clearing"
	StateYearComplete   GameState = "year_complete"
	StateGameComplete   GameState = "game_complete"
)

// Valid reports whether s is one of the known game phases.
func (s GameState) Valid() bool {
	switch s {
	case StateSetup, StateYearPlanning, StateBiddingOpen,
		StateMarketClearing, StateYearComplete, StateGameComplete:
		return true
	}
	return false
}

// Label returns a short human description of the phase, suitable for
// user-facing phase-change notifications.
func (s GameState) Label() string {
	switch s {
	case StateSetup:
		return "session setup"
	case StateYearPlanning:
		return "year planning: review your portfolio and plan investments"
	case StateBiddingOpen:
		return "bidding open: submit yearly bids for your plants"
	case StateMarketClearing:
		return "market clearing in progress"
	case StateYearComplete:
		return "year complete: results are available"
	case StateGameComplete:
		return "game complete: final rankings are available"
	default:
		return string(s)
	}
}

// Role identifies which dashboard the user operates.
type Role string

const (
	RoleOperator Role = "operator"
	RoleUtility  Role = "utility"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool { return r == RoleOperator || r == RoleUtility }

// GameSession is one run of the simulation with a fixed year range and an
// evolving phase. It is server-authoritative; the client only issues control
// commands and mirrors the result.
type GameSession struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	OperatorID        string    `json:"operator_id"`
	CurrentYear       int       `json:"current_year"`
	StartYear         int       `json:"start_year"`
	EndYear           int       `json:"end_year"`
	State             GameState `json:"state"`
	CarbonPricePerTon float64   `json:"carbon_price_per_ton"`
}

// YearsRemaining returns the number of simulated years left to play.
func (s GameSession) YearsRemaining() int {
	if s.CurrentYear >= s.EndYear {
		return 0
	}
	return s.EndYear - s.CurrentYear
}

// Progress returns the fraction of the simulation horizon already played,
// between 0 and 1.
func (s GameSession) Progress() float64 {
	span := s.EndYear - s.StartYear
	if span <= 0 {
		return 1
	}
	p := float64(s.CurrentYear-s.StartYear) / float64(span)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// DemandProfile describes annual demand split into the three load periods.
type DemandProfile struct {
	OffPeakHours     int     `json:"off_peak_hours"`
	ShoulderHours    int     `json:"shoulder_hours"`
	PeakHours        int     `json:"peak_hours"`
	OffPeakDemand    float64 `json:"off_peak_demand"`
	ShoulderDemand   float64 `json:"shoulder_demand"`
	PeakDemand       float64 `json:"peak_demand"`
	DemandGrowthRate float64 `json:"demand_growth_rate"`
}

// PeriodDemand returns the average demand in MW for the period, compounded by
// the growth rate over yearOffset years.
func (p DemandProfile) PeriodDemand(period LoadPeriod, yearOffset int) float64 {
	var base float64
	switch period {
	case PeriodOffPeak:
		base = p.OffPeakDemand
	case PeriodShoulder:
		base = p.ShoulderDemand
	case PeriodPeak:
		base = p.PeakDemand
	}
	growth := 1.0
	for i := 0; i < yearOffset; i++ {
		growth *= 1 + p.DemandGrowthRate
	}
	return base * growth
}

// MarketEvent is an instructor-configured disturbance applied to one year.
type MarketEvent struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"game_session_id"`
	Year        int       `json:"year"`
	EventType   string    `json:"event_type"`
	Description string    `json:"description"`
	Impact      float64   `json:"impact"`
	Triggered   bool      `json:"triggered"`
	CreatedAt   time.Time `json:"created_at"`
}

// User mirrors the server-side account record.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	UserType Role   `json:"user_type"`
}
