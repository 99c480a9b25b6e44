package state

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powerclass/marketctl/core/model"
	"github.com/powerclass/marketctl/infra/persist"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(persist.NewMemStore())
	t.Cleanup(s.Close)
	return s
}

func session(id string, state model.GameState) *model.GameSession {
	return &model.GameSession{
		ID:          id,
		Name:        "test",
		StartYear:   2025,
		EndYear:     2035,
		CurrentYear: 2026,
		State:       state,
	}
}

func TestSetCurrentSessionNilClearsIdentity(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetRole(model.RoleUtility))
	require.NoError(t, s.SetUtilityID("u1"))
	_, err := s.SetCurrentSession(session("s1", model.StateYearPlanning))
	require.NoError(t, err)

	changes, err := s.SetCurrentSession(nil)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, ChangeSessionCleared, changes[0].Kind)
	assert.Empty(t, s.Role())
	assert.Empty(t, s.UtilityID())
	assert.Nil(t, s.CurrentSession())
}

func TestPhaseChangeEmittedOncePerTransition(t *testing.T) {
	s := newTestStore(t)
	_, err := s.SetCurrentSession(session("s1", model.StateYearPlanning))
	require.NoError(t, err)

	changes, err := s.SetCurrentSession(session("s1", model.StateBiddingOpen))
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, ChangePhase, changes[0].Kind)
	assert.Equal(t, model.StateYearPlanning, changes[0].Previous)
	assert.Equal(t, model.StateBiddingOpen, changes[0].Current)

	// Same state again: no change emitted.
	changes, err = s.SetCurrentSession(session("s1", model.StateBiddingOpen))
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestPhaseChangePublishedOnBus(t *testing.T) {
	s := newTestStore(t)
	ch := s.Changes()
	_, err := s.SetCurrentSession(session("s1", model.StateYearPlanning))
	require.NoError(t, err)
	first := <-ch
	assert.Equal(t, ChangeSessionSelected, first.Kind)

	_, err = s.SetCurrentSession(session("s1", model.StateMarketClearing))
	require.NoError(t, err)
	second := <-ch
	assert.Equal(t, ChangePhase, second.Kind)
	assert.Equal(t, model.StateMarketClearing, second.Current)
	s.Unsubscribe(ch)
}

func TestTotalCapacityCountsOperatingOnly(t *testing.T) {
	s := newTestStore(t)
	s.SetPlants([]model.PowerPlant{
		{ID: "p1", CapacityMW: 100, Status: model.StatusOperating, PlantType: model.PlantCoal},
		{ID: "p2", CapacityMW: 200, Status: model.StatusRetired, PlantType: model.PlantCoal},
		{ID: "p3", CapacityMW: 300, Status: model.StatusOperating, PlantType: model.PlantSolar},
	})
	assert.Equal(t, 400.0, s.TotalCapacity())
}

func TestPortfolioMixGroupsOperatingByType(t *testing.T) {
	s := newTestStore(t)
	s.SetPlants([]model.PowerPlant{
		{ID: "p1", CapacityMW: 100, Status: model.StatusOperating, PlantType: model.PlantGasCC},
		{ID: "p2", CapacityMW: 150, Status: model.StatusOperating, PlantType: model.PlantGasCC},
		{ID: "p3", CapacityMW: 300, Status: model.StatusOperating, PlantType: model.PlantWindOnshore},
		{ID: "p4", CapacityMW: 500, Status: model.StatusUnderConstruction, PlantType: model.PlantNuclear},
	})
	mix := s.PortfolioMix()
	assert.Equal(t, map[model.PlantType]float64{
		model.PlantGasCC:       250,
		model.PlantWindOnshore: 300,
	}, mix)
}

func TestPlantsByStatus(t *testing.T) {
	s := newTestStore(t)
	s.SetPlants([]model.PowerPlant{
		{ID: "p1", Status: model.StatusOperating},
		{ID: "p2", Status: model.StatusMaintenance},
	})
	got := s.PlantsByStatus(model.StatusMaintenance)
	require.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].ID)
}

func TestCurrentYearBids(t *testing.T) {
	s := newTestStore(t)
	_, err := s.SetCurrentSession(session("s1", model.StateBiddingOpen))
	require.NoError(t, err)
	s.SetBids([]model.YearlyBid{
		{ID: "b1", Year: 2026},
		{ID: "b2", Year: 2025},
		{ID: "b3", Year: 2026},
	})
	got := s.CurrentYearBids()
	require.Len(t, got, 2)
	assert.Equal(t, "b1", got[0].ID)
	assert.Equal(t, "b3", got[1].ID)
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	fs, err := persist.NewFileStore(path)
	require.NoError(t, err)

	s := New(fs)
	require.NoError(t, s.SetRole(model.RoleUtility))
	require.NoError(t, s.SetUtilityID("u1"))
	_, err = s.SetCurrentSession(session("s1", model.StateBiddingOpen))
	require.NoError(t, err)
	s.SetPlants([]model.PowerPlant{{ID: "p1", Status: model.StatusOperating, CapacityMW: 50}})
	s.Close()

	// A fresh store over the same file restores identity, caches reset.
	restored := New(fs)
	defer restored.Close()
	require.NoError(t, restored.Load())
	assert.Equal(t, model.RoleUtility, restored.Role())
	assert.Equal(t, "u1", restored.UtilityID())
	require.NotNil(t, restored.CurrentSession())
	assert.Equal(t, "s1", restored.CurrentSession().ID)
	assert.Empty(t, restored.Plants())
	assert.Zero(t, restored.TotalCapacity())
}

func TestAddMarketResultsDeduplicates(t *testing.T) {
	s := newTestStore(t)
	s.AddMarketResults([]model.MarketResult{
		{Year: 2026, Period: model.PeriodPeak, ClearingPrice: 62},
	})
	s.AddMarketResults([]model.MarketResult{
		{Year: 2026, Period: model.PeriodPeak, ClearingPrice: 62},
		{Year: 2026, Period: model.PeriodOffPeak, ClearingPrice: 21},
	})
	assert.Len(t, s.MarketResults(), 2)
}

func TestResetClearsEverything(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetRole(model.RoleOperator))
	_, err := s.SetCurrentSession(session("s1", model.StateSetup))
	require.NoError(t, err)
	s.SetPlants([]model.PowerPlant{{ID: "p1"}})

	require.NoError(t, s.Reset())
	assert.Empty(t, s.Role())
	assert.Nil(t, s.CurrentSession())
	assert.Empty(t, s.Plants())
}
