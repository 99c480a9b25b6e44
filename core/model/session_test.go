package model

import "testing"

func TestGameStateValid(t *testing.T) {
	for _, s := range []GameState{StateSetup, StateYearPlanning, StateBiddingOpen, StateMarketClearing, StateYearComplete, StateGameComplete} {
		if !s.Valid() {
			t.Errorf("%s reported invalid", s)
		}
	}
	if GameState("paused").Valid() {
		t.Errorf("unknown state reported valid")
	}
}

func TestSessionProgress(t *testing.T) {
	s := GameSession{StartYear: 2025, EndYear: 2035, CurrentYear: 2030}
	if got := s.Progress(); got != 0.5 {
		t.Fatalf("progress = %v, want 0.5", got)
	}
	if got := s.YearsRemaining(); got != 5 {
		t.Fatalf("years remaining = %d, want 5", got)
	}
	s.CurrentYear = 2040
	if got := s.Progress(); got != 1 {
		t.Fatalf("progress past end = %v, want 1", got)
	}
	if got := s.YearsRemaining(); got != 0 {
		t.Fatalf("years remaining past end = %d, want 0", got)
	}
}

func TestDemandProfileGrowth(t *testing.T) {
	p := DemandProfile{PeakDemand: 2400, DemandGrowthRate: 0.02}
	if got := p.PeriodDemand(PeriodPeak, 0); got != 2400 {
		t.Fatalf("year 0 demand = %v", got)
	}
	got := p.PeriodDemand(PeriodPeak, 2)
	want := 2400 * 1.02 * 1.02
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("year 2 demand = %v, want %v", got, want)
	}
}
