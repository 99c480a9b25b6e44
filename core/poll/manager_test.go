package poll

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeFetchesImmediately(t *testing.T) {
	m := NewManager(nil, nil)
	defer m.Close()

	var calls atomic.Int32
	release, err := m.Subscribe("session", time.Hour, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})
	require.NoError(t, err)
	defer release()

	require.Eventually(t, func() bool { return calls.Load() == 1 },
		time.Second, 5*time.Millisecond)
}

func TestSubscribersShareOnePoller(t *testing.T) {
	m := NewManager(nil, nil)
	defer m.Close()

	var calls atomic.Int32
	fetch := func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}
	r1, err := m.Subscribe("financials", 20*time.Millisecond, fetch)
	require.NoError(t, err)
	r2, err := m.Subscribe("financials", 5*time.Millisecond, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Active())

	// One subscriber leaving keeps the poller alive.
	r1()
	assert.Equal(t, 1, m.Active())

	r2()
	assert.Equal(t, 0, m.Active())
	settled := calls.Load()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, settled, calls.Load(), "poller kept running after last release")
}

func TestReleaseIsIdempotent(t *testing.T) {
	m := NewManager(nil, nil)
	defer m.Close()

	release, err := m.Subscribe("plants", time.Hour, func(ctx context.Context) error { return nil })
	require.NoError(t, err)
	release()
	release()
	assert.Equal(t, 0, m.Active())
}

func TestFetchErrorsDoNotStopPolling(t *testing.T) {
	m := NewManager(nil, nil)
	defer m.Close()

	var calls atomic.Int32
	release, err := m.Subscribe("results", 10*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("backend down")
	})
	require.NoError(t, err)
	defer release()

	require.Eventually(t, func() bool { return calls.Load() >= 3 },
		time.Second, 5*time.Millisecond)
}

func TestCloseStopsEverything(t *testing.T) {
	m := NewManager(nil, nil)
	var calls atomic.Int32
	_, err := m.Subscribe("a", 10*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})
	require.NoError(t, err)
	_, err = m.Subscribe("b", 10*time.Millisecond, func(ctx context.Context) error { return nil })
	require.NoError(t, err)

	m.Close()
	assert.Equal(t, 0, m.Active())
	settled := calls.Load()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, settled, calls.Load())

	_, err = m.Subscribe("c", time.Second, func(ctx context.Context) error { return nil })
	assert.Error(t, err)
}

func TestInvalidSubscriptions(t *testing.T) {
	m := NewManager(nil, nil)
	defer m.Close()
	_, err := m.Subscribe("x", 0, func(ctx context.Context) error { return nil })
	assert.Error(t, err)
	_, err = m.Subscribe("x", time.Second, nil)
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	var c Config
	c.SetDefaults()
	assert.Equal(t, 3, c.SessionSeconds)
	assert.Equal(t, 5, c.FinancialsSeconds)
	assert.Equal(t, 10, c.PlantsSeconds)
	assert.Equal(t, 10, c.ResultsSeconds)
}
