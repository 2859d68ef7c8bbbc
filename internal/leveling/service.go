package leveling

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"locust/internal/config"
	"locust/internal/database"
)

// Award describes the result of an XP grant that crossed a level boundary.
type Award struct {
	Entry    *database.LevelEntry
	NewLevel int
	// RoleID is the role reward configured for the new level, if any.
	RoleID string
	// AnnounceChannelID is where the level-up message goes. Empty when
	// announcements are disabled for the guild.
	AnnounceChannelID string
}

// Service awards XP for messages, applying per-user cooldowns and
// per-guild settings.
type Service struct {
	config *config.Config
	db     *database.DB

	mu       sync.Mutex
	lastSeen map[string]time.Time

	now func() time.Time
}

func NewService(cfg *config.Config, db *database.DB) *Service {
	return &Service{
		config:   cfg,
		db:       db,
		lastSeen: make(map[string]time.Time),
		now:      time.Now,
	}
}

// HandleMessage grants XP for a guild message. It returns a non-nil Award
// when the grant crossed a level boundary, and nil otherwise (including
// when the user is still on cooldown or leveling is disabled).
func (svc *Service) HandleMessage(guildID, userID, channelID string) (*Award, error) {
	settings, err := svc.db.GetLevelSettings(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load level settings: %w", err)
	}
	if !settings.Enabled {
		return nil, nil
	}

	if !svc.takeCooldown(guildID, userID, time.Duration(settings.CooldownSeconds)*time.Second) {
		return nil, nil
	}

	amount := settings.MinXP
	if settings.MaxXP > settings.MinXP {
		amount += rand.Intn(settings.MaxXP - settings.MinXP + 1)
	}

	entry, leveledUp, err := svc.db.AddXP(guildID, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to add XP: %w", err)
	}
	if !leveledUp {
		return nil, nil
	}

	award := &Award{
		Entry:    entry,
		NewLevel: entry.Level,
	}
	if settings.AnnounceLevelUp {
		award.AnnounceChannelID = settings.LevelUpChannelID
		if award.AnnounceChannelID == "" {
			award.AnnounceChannelID = channelID
		}
	}

	rewards, err := svc.db.GetRoleRewards(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load role rewards: %w", err)
	}
	if roleID, ok := rewards[entry.Level]; ok {
		award.RoleID = roleID
	}

	return award, nil
}

// takeCooldown reports whether the user is off cooldown, and if so,
// starts a new one.
func (svc *Service) takeCooldown(guildID, userID string, cooldown time.Duration) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	key := guildID + ":" + userID
	now := svc.now()
	if last, ok := svc.lastSeen[key]; ok && now.Sub(last) < cooldown {
		return false
	}
	svc.lastSeen[key] = now
	return true
}
