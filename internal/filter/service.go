// Package filter scans guild messages against per-guild blacklists,
// tracks violations in a sliding window, and escalates repeat offenders.
package filter

import (
	"strings"
	"sync"
	"time"

	"locust/internal/config"
	"locust/internal/database"
	"locust/internal/punish"
)

// violationWindow bounds how long violations count toward escalation.
const violationWindow = 10 * time.Minute

// Service holds the filter state for all guilds.
type Service struct {
	config *config.Config
	db     *database.DB

	mu         sync.Mutex
	violations map[string][]time.Time // guildID:userID → violation times
	now        func() time.Time
}

// NewService creates the filter service.
func NewService(cfg *config.Config, db *database.DB) *Service {
	return &Service{
		config:     cfg,
		db:         db,
		violations: make(map[string][]time.Time),
		now:        time.Now,
	}
}

// CheckMessage reports whether content violates the guild's blacklist,
// and the term that matched. Whitelisted terms never match.
func (f *Service) CheckMessage(guildID, content string) (bool, string) {
	if f.db == nil {
		return false, ""
	}

	blacklist, err := f.db.GetFilterTerms(guildID, database.FilterBlacklist)
	if err != nil {
		f.config.Logger.Errorf("Failed to load blacklist for %s: %v", guildID, err)
		return false, ""
	}
	if len(blacklist) == 0 {
		return false, ""
	}

	whitelist, err := f.db.GetFilterTerms(guildID, database.FilterWhitelist)
	if err != nil {
		f.config.Logger.Errorf("Failed to load whitelist for %s: %v", guildID, err)
		whitelist = nil
	}

	return Match(content, blacklist, whitelist)
}

// Match checks content against the term lists. Matching is
// case-insensitive substring containment; a whitelisted term that
// contains the matched region suppresses the hit.
func Match(content string, blacklist, whitelist []string) (bool, string) {
	lowered := strings.ToLower(content)

	for _, term := range blacklist {
		term = strings.ToLower(term)
		if term == "" || !strings.Contains(lowered, term) {
			continue
		}

		whitelisted := false
		for _, allow := range whitelist {
			allow = strings.ToLower(allow)
			if allow != "" && strings.Contains(allow, term) && strings.Contains(lowered, allow) {
				whitelisted = true
				break
			}
		}
		if !whitelisted {
			return true, term
		}
	}

	return false, ""
}

// RecordViolation registers a violation and returns the punishment the
// escalation ladder prescribes for the user's recent count.
func (f *Service) RecordViolation(guildID, userID string) punish.Punishment {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := guildID + ":" + userID
	now := f.now()
	cutoff := now.Add(-violationWindow)

	recent := f.violations[key][:0]
	for _, ts := range f.violations[key] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}
	recent = append(recent, now)
	f.violations[key] = recent

	return punish.ForViolations(len(recent), punish.DefaultThreshold)
}
