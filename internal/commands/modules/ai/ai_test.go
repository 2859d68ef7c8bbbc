package ai

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTrimToMessageLimit(t *testing.T) {
	short := "hello"
	assert.Equal(t, short, trimToMessageLimit(short))

	long := strings.Repeat("a", 2500)
	trimmed := trimToMessageLimit(long)
	assert.Len(t, trimmed, 2000)
	assert.True(t, strings.HasSuffix(trimmed, "..."))
}

func TestTrimToMessageLimitKeepsRunesWhole(t *testing.T) {
	// 1000 two-byte runes; the naive byte cut at 1997 would land mid-rune.
	long := strings.Repeat("é", 1000)
	trimmed := trimToMessageLimit(long)
	assert.True(t, utf8.ValidString(trimmed))
	assert.LessOrEqual(t, len(trimmed), 2000)
	assert.True(t, strings.HasSuffix(trimmed, "..."))
}
