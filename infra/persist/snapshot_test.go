package persist

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powerclass/marketctl/core/model"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	snap := Snapshot{
		Role:      model.RoleUtility,
		UtilityID: "u1",
		CurrentSession: &model.GameSession{
			ID:          "s1",
			Name:        "spring-2026",
			State:       model.StateBiddingOpen,
			StartYear:   2025,
			EndYear:     2035,
			CurrentYear: 2026,
		},
	}
	require.NoError(t, store.Save(snap))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, model.RoleUtility, got.Role)
	assert.Equal(t, "u1", got.UtilityID)
	require.NotNil(t, got.CurrentSession)
	assert.Equal(t, "s1", got.CurrentSession.ID)
	assert.Equal(t, model.StateBiddingOpen, got.CurrentSession.State)
}

func TestFileStoreMissingFile(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	snap, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, snap.UtilityID)
	assert.Nil(t, snap.CurrentSession)
}

func TestFileStoreClear(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	require.NoError(t, store.Save(Snapshot{UtilityID: "u2"}))
	require.NoError(t, store.Clear())
	// Clearing twice must not fail.
	require.NoError(t, store.Clear())
	snap, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, snap.UtilityID)
}
