package tickets

import (
	"testing"
	"time"

	"locust/internal/config"
	"locust/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTypes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single", input: "Support", want: []string{"Support"}},
		{name: "multiple with spaces", input: "Support, Report ,Appeal", want: []string{"Support", "Report", "Appeal"}},
		{name: "empty", input: "", want: nil},
		{name: "stray commas", input: ",Support,,", want: []string{"Support"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitTypes(tt.input))
		})
	}
}

func TestRemindStaleTickets(t *testing.T) {
	cfg := config.NewMockConfig(nil)
	db, err := database.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.CreateTicket("guild1", "chan-old", "user1", "Support")
	require.NoError(t, err)

	svc := NewReminderService(cfg, db)

	var reminded []string
	svc.remind = func(channelID, content string) error {
		reminded = append(reminded, channelID)
		return nil
	}

	// Fresh tickets get no reminder.
	require.NoError(t, svc.RemindStaleTickets())
	assert.Empty(t, reminded)

	// Three days later the ticket is stale.
	svc.now = func() time.Time { return time.Now().Add(72 * time.Hour) }
	require.NoError(t, svc.RemindStaleTickets())
	assert.Equal(t, []string{"chan-old"}, reminded)
}
