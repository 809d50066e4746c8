package cycle

import "time"

// State represents the current Controller mode.
type State string

const (
	StateIdle    State = "idle"
	StateWorking State = "working"
	StateOnBreak State = "on_break"
)

// EventType defines the type of Controller event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventCountdown   EventType = "countdown"
	EventCounter     EventType = "counter"
	EventNotify      EventType = "notify"
)

// NotifyDuration is how long interval notifications stay on screen.
const NotifyDuration = 30 * time.Second

// Event represents a Controller update for observers.
type Event struct {
	Type      EventType
	State     State
	Countdown int
	Completed int
	LongBreak bool
	Title     string
	Message   string
	Duration  time.Duration
	At        time.Time
}
