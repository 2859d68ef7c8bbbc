package filter

import (
	"testing"
	"time"

	"locust/internal/config"
	"locust/internal/database"
	"locust/internal/punish"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	blacklist := []string{"scam", "free nitro"}
	whitelist := []string{"scampi"}

	tests := []struct {
		name    string
		content string
		hit     bool
		term    string
	}{
		{"clean message", "hello there", false, ""},
		{"direct hit", "this is a SCAM", true, "scam"},
		{"multi-word term", "get Free Nitro now", true, "free nitro"},
		{"whitelisted containment", "I love scampi", false, ""},
		{"hit despite other whitelist", "scam and scampi", false, ""},
		{"empty content", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, term := Match(tt.content, blacklist, whitelist)
			assert.Equal(t, tt.hit, hit)
			assert.Equal(t, tt.term, term)
		})
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := database.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewService(config.NewMockConfig(nil), db)
}

func TestCheckMessage(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.db.AddFilterTerm("g1", "badword", database.FilterBlacklist))

	hit, term := svc.CheckMessage("g1", "that is a BADWORD indeed")
	assert.True(t, hit)
	assert.Equal(t, "badword", term)

	// Other guilds are unaffected
	hit, _ = svc.CheckMessage("g2", "badword")
	assert.False(t, hit)
}

func TestRecordViolationEscalates(t *testing.T) {
	svc := newTestService(t)

	p := svc.RecordViolation("g1", "u1")
	assert.Equal(t, punish.ActionNone, p.Action)
	p = svc.RecordViolation("g1", "u1")
	assert.Equal(t, punish.ActionNone, p.Action)

	p = svc.RecordViolation("g1", "u1")
	assert.Equal(t, punish.ActionWarn, p.Action)

	p = svc.RecordViolation("g1", "u1")
	assert.Equal(t, punish.ActionMute, p.Action)
	assert.Equal(t, int64(300), p.Duration.Seconds())
}

func TestRecordViolationWindowExpires(t *testing.T) {
	svc := newTestService(t)

	current := time.Now()
	svc.now = func() time.Time { return current }

	svc.RecordViolation("g1", "u1")
	svc.RecordViolation("g1", "u1")

	// Old violations age out of the window
	current = current.Add(violationWindow + time.Minute)
	p := svc.RecordViolation("g1", "u1")
	assert.Equal(t, punish.ActionNone, p.Action)
}
