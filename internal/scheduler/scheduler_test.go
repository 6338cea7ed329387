package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsTask(t *testing.T) {
	s := New()

	var calls int32
	s.Add(context.Background(), "count", func(context.Context) {
		atomic.AddInt32(&calls, 1)
	}, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) >= 3
	}, time.Second, time.Millisecond)

	s.Stop()
	stopped := atomic.LoadInt32(&calls)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, atomic.LoadInt32(&calls))
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	s.Add(ctx, "wait", func(context.Context) {}, time.Hour)
	cancel()

	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
