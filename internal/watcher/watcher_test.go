package watcher

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_SweepsImmediately(t *testing.T) {
	var calls atomic.Int32
	w := New("@every 1h", func() (bool, error) {
		calls.Add(1)
		return true, nil
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestRun_InvalidSchedule(t *testing.T) {
	w := New("not a schedule", func() (bool, error) { return false, nil }, zerolog.Nop())

	err := w.Run(context.Background())
	assert.ErrorContains(t, err, "invalid watch schedule")
}

func TestRun_SweepErrorDoesNotStopWatcher(t *testing.T) {
	var calls atomic.Int32
	w := New("@every 10ms", func() (bool, error) {
		calls.Add(1)
		return false, errors.New("boom")
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}
