package tickets

import (
	"fmt"
	"time"

	"locust/internal/commands/types"
	"locust/internal/config"
	"locust/internal/database"
)

// staleAfter is how long a ticket may sit open before staff get nudged.
const staleAfter = 48 * time.Hour

// ReminderService nudges staff about tickets that have sat open too long.
type ReminderService struct {
	types.BaseService
	config *config.Config
	db     *database.DB

	// remind posts the nudge; swapped in tests.
	remind func(channelID, content string) error

	now func() time.Time
}

func NewReminderService(cfg *config.Config, db *database.DB) *ReminderService {
	svc := &ReminderService{
		config: cfg,
		db:     db,
		now:    time.Now,
	}
	svc.remind = func(channelID, content string) error {
		_, err := svc.Session.ChannelMessageSend(channelID, content)
		return err
	}
	return svc
}

// HourFuncs returns the stale-ticket sweep.
func (svc *ReminderService) HourFuncs() []func() error {
	return []func() error{svc.RemindStaleTickets}
}

// RemindStaleTickets posts a reminder in every open ticket older than
// staleAfter.
func (svc *ReminderService) RemindStaleTickets() error {
	if svc.db == nil {
		return nil
	}

	stale, err := svc.db.GetStaleOpenTickets(svc.now().Add(-staleAfter))
	if err != nil {
		return fmt.Errorf("failed to query stale tickets: %w", err)
	}

	for _, ticket := range stale {
		msg := fmt.Sprintf("⏰ Ticket #%d has been open since <t:%d:R>. Close it with `/ticket close` if it's resolved.", ticket.ID, ticket.CreatedAt.Unix())
		if err := svc.remind(ticket.ChannelID, msg); err != nil {
			svc.config.Logger.Errorf("Failed to post stale ticket reminder for #%d: %v", ticket.ID, err)
		}
	}

	return nil
}
