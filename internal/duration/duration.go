// Package duration implements the compact duration notation used by
// moderation commands: "<n>d <n>h <n>m <n>s" with optional long unit
// names ("2days 4hours"), units always in days→hours→minutes→seconds
// order.
package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Duration is an immutable non-negative span of time stored as a whole
// number of seconds.
type Duration int64

// Token grammar is anchored at the start only; trailing text that does
// not continue the grammar is ignored ("1d stuff" parses as one day).
var pattern = regexp.MustCompile(
	`^(?:(?P<days>\d+)d(?:ays?)? ?)?` +
		`(?:(?P<hours>\d+)h(?:ours?)? ?)?` +
		`(?:(?P<minutes>\d+)m(?:inutes?)? ?)?` +
		`(?:(?P<seconds>\d+)s(?:econds?)?)?`)

var groupIndex = func() map[string]int {
	idx := make(map[string]int)
	for i, name := range pattern.SubexpNames() {
		if name != "" {
			idx[name] = i
		}
	}
	return idx
}()

// Parse interprets a compact duration string. It returns false when the
// input is empty or contains no recognizable unit token. A token with a
// zero magnitude ("0s") is a valid zero duration, not a miss.
func Parse(input string) (Duration, bool) {
	if input == "" {
		return 0, false
	}

	m := pattern.FindStringSubmatch(strings.ToLower(input))
	if m == nil {
		return 0, false
	}

	var total int64
	matched := false
	for name, mult := range map[string]int64{
		"days":    86400,
		"hours":   3600,
		"minutes": 60,
		"seconds": 1,
	} {
		raw := m[groupIndex[name]]
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		matched = true
		total += n * mult
	}

	if !matched {
		return 0, false
	}
	return Duration(total), true
}

// Format renders a duration for display. A nil duration means "no
// expiry" and renders as Permanent.
func Format(d *Duration) string {
	if d == nil {
		return "Permanent"
	}
	return d.String()
}

// String renders the non-zero components of the duration in order,
// space-joined. A zero duration renders as "0s"; a negative one (never
// produced by Parse, but possible by direct construction) renders as
// "Invalid duration".
func (d Duration) String() string {
	total := int64(d)
	if total < 0 {
		return "Invalid duration"
	}

	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}

	return strings.Join(parts, " ")
}

// Seconds returns the total whole-second count.
func (d Duration) Seconds() int64 {
	return int64(d)
}
