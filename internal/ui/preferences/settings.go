package preferences

import (
	"tomatray/internal/core/model"
)

// Default durations in minutes.
const (
	DefaultWorkMinutes       = 25
	DefaultShortBreakMinutes = 5
	DefaultLongBreakMinutes  = 15
)

// Position is the last known options window position.
type Position struct {
	X int
	Y int
}

// IsZero reports whether no position has been recorded.
func (position Position) IsZero() bool {
	return position.X == 0 && position.Y == 0
}

// Settings defines editable user preferences.
type Settings struct {
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	SoundEnabled      bool
	Autostart         bool

	WindowPosition Position
	Completed      int
}

// DefaultSettings returns default settings for Tomatray.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:       DefaultWorkMinutes,
		ShortBreakMinutes: DefaultShortBreakMinutes,
		LongBreakMinutes:  DefaultLongBreakMinutes,
		SoundEnabled:      true,
	}
}

// CycleConfig converts settings to the controller configuration.
func (settings Settings) CycleConfig() model.CycleConfig {
	return model.CycleConfig{
		WorkMinutes:       settings.WorkMinutes,
		ShortBreakMinutes: settings.ShortBreakMinutes,
		LongBreakMinutes:  settings.LongBreakMinutes,
		SoundEnabled:      settings.SoundEnabled,
	}.Normalized()
}
