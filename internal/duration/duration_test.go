package duration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
		ok    bool
	}{
		{"empty", "", 0, false},
		{"single day", "1d", 86400, true},
		{"hours and minutes", "2h 30m", 9000, true},
		{"seconds only", "45s", 45, true},
		{"all units", "1d 2h 3m 4s", 93784, true},
		{"no recognizable token", "not a duration", 0, false},
		{"long unit names", "2days 4hours", 2*86400 + 4*3600, true},
		{"singular long names", "1day 1hour 1minute 1second", 90061, true},
		{"mixed case", "1D 2H", 86400 + 7200, true},
		{"compact", "1d2h3m4s", 93784, true},
		{"zero magnitude token", "0s", 0, true},
		{"trailing garbage ignored", "1d garbage", 86400, true},
		{"out of order stops matching", "5m 2d", 300, true},
		{"leading garbage", "about 5m", 0, false},
		{"bare number", "15", 0, false},
		{"large values", "365d", 365 * 86400, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.Seconds())
			}
		})
	}
}

func TestFormat(t *testing.T) {
	d := func(secs int64) *Duration {
		v := Duration(secs)
		return &v
	}

	tests := []struct {
		name string
		in   *Duration
		want string
	}{
		{"nil means permanent", nil, "Permanent"},
		{"zero shows seconds", d(0), "0s"},
		{"negative is invalid", d(-5), "Invalid duration"},
		{"all components", d(93784), "1d 2h 3m 4s"},
		{"zero components omitted", d(9000), "2h 30m"},
		{"exactly one day", d(86400), "1d"},
		{"just under a minute", d(59), "59s"},
		{"day and seconds", d(86400 + 5), "1d 5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

// Parsing a formatted duration must reproduce the original value, and
// re-formatting the parsed value must reproduce the string.
func TestRoundTrip(t *testing.T) {
	seconds := []int64{0, 1, 59, 60, 61, 3599, 3600, 3661, 86399, 86400, 93784, 31 * 86400}

	for _, n := range seconds {
		d := Duration(n)
		s := d.String()
		require.NotEmpty(t, s)

		parsed, ok := Parse(s)
		require.True(t, ok, "failed to re-parse %q", s)
		assert.Equal(t, n, parsed.Seconds())
		assert.Equal(t, s, parsed.String())
	}
}
