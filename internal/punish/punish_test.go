package punish

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForViolations(t *testing.T) {
	tests := []struct {
		name       string
		violations int
		want       Action
		muteSecs   int64
	}{
		{"below threshold", 2, ActionNone, 0},
		{"at threshold warns", 3, ActionWarn, 0},
		{"second tier short mute", 4, ActionMute, 300},
		{"third tier longer mute", 5, ActionMute, 1800},
		{"fourth tier day mute", 6, ActionMute, 86400},
		{"fifth tier kick", 7, ActionKick, 0},
		{"sixth tier ban", 8, ActionBan, 0},
		{"beyond ladder repeats ban", 20, ActionBan, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ForViolations(tt.violations, DefaultThreshold)
			assert.Equal(t, tt.want, p.Action)
			if tt.want == ActionMute {
				assert.Equal(t, tt.muteSecs, p.Duration.Seconds())
			}
		})
	}
}

func TestForViolationsBadThreshold(t *testing.T) {
	p := ForViolations(3, 0)
	assert.Equal(t, ActionWarn, p.Action)
}
