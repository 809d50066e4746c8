package model

// LongBreakEvery is the modulus applied to the completed cycle count,
// after incrementing, to pick a long break over a short one.
const LongBreakEvery = 3

// Duration bounds accepted for every phase, in minutes.
const (
	MinMinutes = 1
	MaxMinutes = 60
)

// CycleConfig contains runtime settings for the Cycle Controller.
type CycleConfig struct {
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	SoundEnabled      bool
}

// Normalized returns a copy with every duration clamped to the accepted range.
func (config CycleConfig) Normalized() CycleConfig {
	config.WorkMinutes = ClampMinutes(config.WorkMinutes)
	config.ShortBreakMinutes = ClampMinutes(config.ShortBreakMinutes)
	config.LongBreakMinutes = ClampMinutes(config.LongBreakMinutes)
	return config
}

// BreakMinutes returns the break length that follows the given number of
// completed work cycles and whether it is a long break.
func (config CycleConfig) BreakMinutes(completed int) (int, bool) {
	if completed > 0 && completed%LongBreakEvery == 0 {
		return config.LongBreakMinutes, true
	}
	return config.ShortBreakMinutes, false
}

// ClampMinutes bounds a duration to [MinMinutes, MaxMinutes].
func ClampMinutes(minutes int) int {
	if minutes < MinMinutes {
		return MinMinutes
	}
	if minutes > MaxMinutes {
		return MaxMinutes
	}
	return minutes
}
