// Package punish decides the escalation ladder applied to repeat
// content-filter offenders.
package punish

import "locust/internal/duration"

// Action is the kind of punishment to apply.
type Action string

const (
	ActionNone Action = "none"
	ActionWarn Action = "warn"
	ActionMute Action = "mute"
	ActionKick Action = "kick"
	ActionBan  Action = "ban"
)

// Punishment is a concrete penalty. Duration is only meaningful for mutes.
type Punishment struct {
	Action   Action
	Duration duration.Duration
}

// DefaultThreshold is the number of violations tolerated inside the
// tracking window before the ladder starts.
const DefaultThreshold = 3

// ladder indexes punishment tiers from 1. Violations beyond the last
// tier repeat it.
var ladder = []Punishment{
	{Action: ActionWarn},
	{Action: ActionMute, Duration: 300},
	{Action: ActionMute, Duration: 1800},
	{Action: ActionMute, Duration: 24 * 3600},
	{Action: ActionKick},
	{Action: ActionBan},
}

// ForViolations returns the punishment for the given violation count
// under the given threshold. Counts at or below the threshold are not
// punished.
func ForViolations(violations, threshold int) Punishment {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if violations < threshold {
		return Punishment{Action: ActionNone}
	}

	tier := violations - threshold + 1
	if tier > len(ladder) {
		tier = len(ladder)
	}
	return ladder[tier-1]
}
