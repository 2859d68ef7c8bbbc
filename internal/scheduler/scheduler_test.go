package scheduler

import (
	"sync/atomic"
	"testing"

	"locust/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerStartStop(t *testing.T) {
	cfg := config.NewMockConfig(nil)
	s := NewScheduler(cfg)

	var calls atomic.Int32
	s.RegisterNewMinuteFunc(func() error {
		calls.Add(1)
		return nil
	})

	require.NoError(t, s.Start())
	// Starting twice is a no-op.
	require.NoError(t, s.Start())
	s.Stop()

	// The minute schedule never fired in this window; registration and
	// clean shutdown are what this exercises.
	assert.Equal(t, int32(0), calls.Load())
}

func TestRegisterFuncRejectsBadSpec(t *testing.T) {
	cfg := config.NewMockConfig(nil)
	s := NewScheduler(cfg)

	assert.Error(t, s.RegisterFunc("not a cron spec", "bad", func() error { return nil }))
	assert.NoError(t, s.RegisterFunc("@hourly", "good", func() error { return nil }))
}

func TestRunAllContinuesPastFailures(t *testing.T) {
	cfg := config.NewMockConfig(nil)
	s := NewScheduler(cfg)

	var ran []string
	s.RegisterNewMinuteFunc(func() error {
		ran = append(ran, "first")
		return assert.AnError
	})
	s.RegisterNewMinuteFunc(func() error {
		ran = append(ran, "second")
		return nil
	})

	s.runAll("minute", s.snapshot(&s.minuteFuncs))
	assert.Equal(t, []string{"first", "second"}, ran)
}
