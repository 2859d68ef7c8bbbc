// Package antispam tracks per-user message history and flags spam:
// message floods, repeated content, mention walls, character runs, and
// emoji walls.
package antispam

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Detection thresholds. A message trips a check when it meets or
// exceeds the corresponding limit.
const (
	rateLimit      = 5  // messages within rateWindow
	duplicateLimit = 3  // identical messages within duplicateWindow
	mentionLimit   = 5  // user mentions in one message
	charRunLimit   = 10 // consecutive repeats of one character
	emojiLimit     = 6  // emoji in one message

	rateWindow      = 5 * time.Second
	duplicateWindow = 30 * time.Second
)

var (
	unicodeEmojiRe = regexp.MustCompile(`[\x{1F000}-\x{1F9FF}]`)
	customEmojiRe  = regexp.MustCompile(`<a?:\w+:\d+>`)
)

type record struct {
	at      time.Time
	content string
}

// Service holds recent message history for all guilds.
type Service struct {
	mu      sync.Mutex
	history map[string][]record // guildID:userID → recent messages
	now     func() time.Time
}

// NewService creates the anti-spam service.
func NewService() *Service {
	return &Service{
		history: make(map[string][]record),
		now:     time.Now,
	}
}

// CheckMessage records the message and reports whether it counts as
// spam, with a short reason for the log.
func (a *Service) CheckMessage(guildID, userID, content string) (bool, string) {
	if reason := checkContent(content); reason != "" {
		return true, reason
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	key := guildID + ":" + userID
	now := a.now()
	cutoff := now.Add(-duplicateWindow)

	recent := a.history[key][:0]
	for _, r := range a.history[key] {
		if r.at.After(cutoff) {
			recent = append(recent, r)
		}
	}
	recent = append(recent, record{at: now, content: content})
	a.history[key] = recent

	burst := 0
	for _, r := range recent {
		if r.at.After(now.Add(-rateWindow)) || r.at.Equal(now) {
			burst++
		}
	}
	if burst >= rateLimit {
		return true, fmt.Sprintf("%d messages in %s", burst, rateWindow)
	}

	// Short messages ("ok", "lol") repeat legitimately.
	if len(content) >= 10 {
		dupes := 0
		for _, r := range recent {
			if r.content == content {
				dupes++
			}
		}
		if dupes >= duplicateLimit {
			return true, "repeated message"
		}
	}

	return false, ""
}

// checkContent runs the single-message checks.
func checkContent(content string) string {
	if n := strings.Count(content, "<@"); n >= mentionLimit {
		return fmt.Sprintf("%d mentions", n)
	}

	if len(content) > 10 {
		run := 1
		var prev rune
		for _, r := range content {
			if r == prev {
				run++
				if run >= charRunLimit {
					return "character spam"
				}
			} else {
				run = 1
				prev = r
			}
		}
	}

	emoji := len(unicodeEmojiRe.FindAllString(content, -1)) +
		len(customEmojiRe.FindAllString(content, -1))
	if emoji >= emojiLimit {
		return fmt.Sprintf("%d emoji", emoji)
	}

	return ""
}
