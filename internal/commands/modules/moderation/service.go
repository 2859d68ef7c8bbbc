package moderation

import (
	"time"

	"locust/internal/commands/types"
	"locust/internal/config"
	"locust/internal/database"
)

// ExpiryService lifts expired temp bans on a schedule.
type ExpiryService struct {
	types.BaseService
	config *config.Config
	db     *database.DB

	// Injected for tests; defaults to the real session call.
	removeBan func(guildID, userID string) error
	now       func() time.Time
}

// NewExpiryService creates the temp-ban expiry service.
func NewExpiryService(cfg *config.Config, db *database.DB) *ExpiryService {
	s := &ExpiryService{
		config: cfg,
		db:     db,
		now:    time.Now,
	}
	s.removeBan = func(guildID, userID string) error {
		return s.Session.GuildBanDelete(guildID, userID)
	}
	return s
}

// MinuteFuncs registers the expiry sweep with the scheduler.
func (s *ExpiryService) MinuteFuncs() []func() error {
	return []func() error{s.SweepExpiredBans}
}

// SweepExpiredBans unbans every user whose temp ban has lapsed.
func (s *ExpiryService) SweepExpiredBans() error {
	if s.db == nil {
		return nil
	}

	expired, err := s.db.GetExpiredTempBans(s.now().Unix())
	if err != nil {
		return err
	}

	for _, ban := range expired {
		if err := s.removeBan(ban.GuildID, ban.UserID); err != nil {
			// The ban may have been lifted manually; still drop the record.
			s.config.Logger.Warnf("Failed to unban %s in %s: %v", ban.UserID, ban.GuildID, err)
		}
		if err := s.db.RemoveTempBan(ban.GuildID, ban.UserID); err != nil {
			s.config.Logger.Errorf("Failed to remove temp ban record: %v", err)
			continue
		}
		s.config.Logger.Infof("Temp ban expired for user %s in guild %s", ban.UserID, ban.GuildID)
	}

	return nil
}
