package actionlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLStoreAppendQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.log")
	store, err := NewJSONLStore(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []Record{
		{Timestamp: base, Action: ActionBidSubmitted, SessionID: "s1", UtilityID: "u1", Detail: "plant p1 year 2026"},
		{Timestamp: base.Add(time.Minute), Action: ActionPlantBuilt, SessionID: "s1", UtilityID: "u1"},
		{Timestamp: base.Add(2 * time.Minute), Action: ActionBidSubmitted, SessionID: "s2", UtilityID: "u2"},
	}
	for _, r := range records {
		require.NoError(t, store.Append(ctx, r))
	}

	got, err := store.Query(ctx, Query{Action: ActionBidSubmitted})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = store.Query(ctx, Query{SessionID: "s1"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = store.Query(ctx, Query{Start: base.Add(30 * time.Second)})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = store.Query(ctx, Query{End: base.Add(30 * time.Second)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "plant p1 year 2026", got[0].Detail)
}

func TestRotatingStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal", "actions.log")
	store, err := NewRotatingJSONLStore(path, 10, 2, 7)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	require.NoError(t, store.Append(ctx, Record{
		Timestamp: time.Now().UTC(), Action: ActionStateCommand, SessionID: "s1", Detail: "bidding_open",
	}))
	got, err := store.Query(ctx, Query{SessionID: "s1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ActionStateCommand, got[0].Action)
}

func TestNewSelectsBackend(t *testing.T) {
	dir := t.TempDir()
	store, err := New(Config{Backend: "jsonl", Path: filepath.Join(dir, "a.log")})
	require.NoError(t, err)
	_, ok := store.(*JSONLStore)
	assert.True(t, ok)

	store, err = New(Config{Backend: "rotating", Path: filepath.Join(dir, "b.log")})
	require.NoError(t, err)
	_, ok = store.(*RotatingJSONLStore)
	assert.True(t, ok)

	_, err = New(Config{Backend: "sqlite", Path: filepath.Join(dir, "c.db")})
	assert.Error(t, err)
}
