// Package raid watches guild join rates and flips guilds into lockdown
// when the rate looks like a raid.
package raid

import (
	"sync"
	"time"

	"locust/internal/config"
)

// sensitivity presets: joins within the window that trigger lockdown.
var thresholds = map[int]struct {
	Joins  int
	Window time.Duration
}{
	1: {Joins: 5, Window: 20 * time.Second},
	2: {Joins: 4, Window: 30 * time.Second},
	3: {Joins: 3, Window: 30 * time.Second},
}

// retention bounds how long join timestamps are kept.
const retention = 5 * time.Minute

// lockdownDuration is how long automatic lockdown lasts before the
// scheduler lifts it.
const lockdownDuration = 10 * time.Minute

// Tracker tracks joins and lockdown state per guild.
type Tracker struct {
	config *config.Config

	mu        sync.Mutex
	joins     map[string][]time.Time
	lockdowns map[string]time.Time // guildID → expiry; zero time means manual (no expiry)
	now       func() time.Time
}

// NewTracker creates a join tracker.
func NewTracker(cfg *config.Config) *Tracker {
	return &Tracker{
		config:    cfg,
		joins:     make(map[string][]time.Time),
		lockdowns: make(map[string]time.Time),
		now:       time.Now,
	}
}

// RecordJoin registers a member join and reports whether it tripped the
// raid threshold (transitioning the guild into lockdown).
func (t *Tracker) RecordJoin(guildID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	cutoff := now.Add(-retention)

	recent := t.joins[guildID][:0]
	for _, ts := range t.joins[guildID] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}
	recent = append(recent, now)
	t.joins[guildID] = recent

	if t.lockedLocked(guildID) {
		return false
	}

	th, ok := thresholds[t.config.GetRaidSensitivity()]
	if !ok {
		th = thresholds[1]
	}

	windowStart := now.Add(-th.Window)
	inWindow := 0
	for _, ts := range recent {
		if ts.After(windowStart) {
			inWindow++
		}
	}

	if inWindow >= th.Joins {
		t.lockdowns[guildID] = now.Add(lockdownDuration)
		return true
	}
	return false
}

// SetLockdown manually enables or disables lockdown. Manual lockdowns
// do not expire automatically.
func (t *Tracker) SetLockdown(guildID string, enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if enabled {
		t.lockdowns[guildID] = time.Time{}
	} else {
		delete(t.lockdowns, guildID)
	}
}

// Locked reports whether a guild is in lockdown.
func (t *Tracker) Locked(guildID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lockedLocked(guildID)
}

func (t *Tracker) lockedLocked(guildID string) bool {
	expiry, ok := t.lockdowns[guildID]
	if !ok {
		return false
	}
	if expiry.IsZero() {
		return true
	}
	return t.now().Before(expiry)
}

// SweepExpired lifts automatic lockdowns that have lapsed and returns
// the guild IDs that were unlocked. Registered as a scheduler job.
func (t *Tracker) SweepExpired() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var unlocked []string
	now := t.now()
	for guildID, expiry := range t.lockdowns {
		if !expiry.IsZero() && now.After(expiry) {
			delete(t.lockdowns, guildID)
			unlocked = append(unlocked, guildID)
		}
	}
	return unlocked
}
