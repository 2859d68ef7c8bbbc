package antispam

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestService(start time.Time) (*Service, *time.Time) {
	current := start
	svc := NewService()
	svc.now = func() time.Time { return current }
	return svc, &current
}

func TestCheckMessageRate(t *testing.T) {
	svc, current := newTestService(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))

	for i := 0; i < 4; i++ {
		spam, _ := svc.CheckMessage("g", "u", "hi")
		assert.False(t, spam)
		*current = current.Add(500 * time.Millisecond)
	}

	spam, reason := svc.CheckMessage("g", "u", "hi")
	assert.True(t, spam)
	assert.Contains(t, reason, "messages in")
}

func TestCheckMessageRateWindowExpires(t *testing.T) {
	svc, current := newTestService(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))

	for i := 0; i < 10; i++ {
		spam, _ := svc.CheckMessage("g", "u", "hi")
		assert.False(t, spam, "message %d", i)
		*current = current.Add(2 * time.Second)
	}
}

func TestCheckMessageDuplicates(t *testing.T) {
	svc, current := newTestService(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))

	for i := 0; i < 2; i++ {
		spam, _ := svc.CheckMessage("g", "u", "check out my cool server")
		assert.False(t, spam)
		*current = current.Add(3 * time.Second)
	}

	spam, reason := svc.CheckMessage("g", "u", "check out my cool server")
	assert.True(t, spam)
	assert.Equal(t, "repeated message", reason)
}

func TestCheckMessageDuplicatesIgnoresShortContent(t *testing.T) {
	svc, current := newTestService(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))

	for i := 0; i < 4; i++ {
		spam, _ := svc.CheckMessage("g", "u", "lol")
		assert.False(t, spam)
		*current = current.Add(3 * time.Second)
	}
}

func TestCheckMessageMentions(t *testing.T) {
	svc, _ := newTestService(time.Now())

	spam, reason := svc.CheckMessage("g", "u", strings.Repeat("<@123456> ", 5))
	assert.True(t, spam)
	assert.Contains(t, reason, "mentions")
}

func TestCheckMessageCharacterRun(t *testing.T) {
	svc, _ := newTestService(time.Now())

	spam, reason := svc.CheckMessage("g", "u", "aaaaaaaaaaaaaaa")
	assert.True(t, spam)
	assert.Equal(t, "character spam", reason)

	// Short runs stay under the limit.
	spam, _ = svc.CheckMessage("g", "u2", "soooo good")
	assert.False(t, spam)
}

func TestCheckMessageEmoji(t *testing.T) {
	svc, _ := newTestService(time.Now())

	spam, reason := svc.CheckMessage("g", "u", strings.Repeat("🦗", 6))
	assert.True(t, spam)
	assert.Contains(t, reason, "emoji")

	spam, _ = svc.CheckMessage("g", "u2", "nice one 🦗🦗")
	assert.False(t, spam)
}

func TestCheckMessageCustomEmoji(t *testing.T) {
	svc, _ := newTestService(time.Now())

	spam, _ := svc.CheckMessage("g", "u", strings.Repeat("<:locust:123456789> ", 6))
	assert.True(t, spam)
}

func TestCheckMessageClean(t *testing.T) {
	svc, _ := newTestService(time.Now())

	spam, reason := svc.CheckMessage("g", "u", "hey <@123>, want to play later? 🦗")
	assert.False(t, spam)
	assert.Empty(t, reason)
}
