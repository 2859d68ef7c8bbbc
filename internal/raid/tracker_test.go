package raid

import (
	"testing"
	"time"

	"locust/internal/config"

	"github.com/stretchr/testify/assert"
)

func newTestTracker(sensitivity int) (*Tracker, *time.Time) {
	cfg := config.NewMockConfig(map[string]interface{}{
		"raid_sensitivity": sensitivity,
	})
	t := NewTracker(cfg)
	current := time.Now()
	t.now = func() time.Time { return current }
	return t, &current
}

func TestRecordJoinTriggersLockdown(t *testing.T) {
	tracker, current := newTestTracker(1)

	// Low sensitivity: 5 joins inside 20 seconds
	for n := 0; n < 4; n++ {
		assert.False(t, tracker.RecordJoin("g1"))
		*current = current.Add(time.Second)
	}
	assert.True(t, tracker.RecordJoin("g1"))
	assert.True(t, tracker.Locked("g1"))

	// Further joins during lockdown don't re-trigger
	assert.False(t, tracker.RecordJoin("g1"))
}

func TestSlowJoinsDoNotTrigger(t *testing.T) {
	tracker, current := newTestTracker(1)

	for n := 0; n < 10; n++ {
		assert.False(t, tracker.RecordJoin("g1"))
		*current = current.Add(time.Minute)
	}
	assert.False(t, tracker.Locked("g1"))
}

func TestHighSensitivity(t *testing.T) {
	tracker, current := newTestTracker(3)

	// High sensitivity: 3 joins inside 30 seconds
	assert.False(t, tracker.RecordJoin("g1"))
	*current = current.Add(time.Second)
	assert.False(t, tracker.RecordJoin("g1"))
	*current = current.Add(time.Second)
	assert.True(t, tracker.RecordJoin("g1"))
}

func TestManualLockdown(t *testing.T) {
	tracker, current := newTestTracker(1)

	tracker.SetLockdown("g1", true)
	assert.True(t, tracker.Locked("g1"))

	// Manual lockdowns don't expire
	*current = current.Add(24 * time.Hour)
	assert.True(t, tracker.Locked("g1"))
	assert.Empty(t, tracker.SweepExpired())

	tracker.SetLockdown("g1", false)
	assert.False(t, tracker.Locked("g1"))
}

func TestAutomaticLockdownExpires(t *testing.T) {
	tracker, current := newTestTracker(3)

	tracker.RecordJoin("g1")
	tracker.RecordJoin("g1")
	assert.True(t, tracker.RecordJoin("g1"))

	*current = current.Add(lockdownDuration + time.Minute)
	assert.False(t, tracker.Locked("g1"))

	unlocked := tracker.SweepExpired()
	assert.Equal(t, []string{"g1"}, unlocked)
}
