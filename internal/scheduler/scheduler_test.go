package scheduler

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

func TestScheduler_RunsRegisteredJob(t *testing.T) {
	s := New(context.Background(), zerolog.Nop())

	var calls atomic.Int32
	require.NoError(t, s.Register("tick", "* * * * * *", func(context.Context) error {
		calls.Add(1)
		return nil
	}))

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_RejectsBadSpec(t *testing.T) {
	s := New(context.Background(), zerolog.Nop())
	err := s.Register("bad", "every tuesday", func(context.Context) error { return nil })
	assert.Error(t, err)

	// Five fields are rejected because a seconds field is required.
	err = s.Register("minutes", "*/5 * * * *", func(context.Context) error { return nil })
	assert.Error(t, err)
}

func TestScheduler_RunNow(t *testing.T) {
	s := New(context.Background(), zerolog.Nop())

	ran := false
	s.RunNow("once", func(context.Context) error {
		ran = true
		return errors.New("logged, not returned")
	})
	assert.True(t, ran)
}

func TestScheduler_SkipsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New(ctx, zerolog.Nop())
	cancel()

	ran := false
	s.RunNow("late", func(context.Context) error {
		ran = true
		return nil
	})
	assert.False(t, ran)
}
