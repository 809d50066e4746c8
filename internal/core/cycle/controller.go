package cycle

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"tomatray/internal/core/model"
)

// SoundPlayer plays the interval alarm.
type SoundPlayer interface {
	Play() error
}

// Options contains runtime options for the Controller.
type Options struct {
	// TickInterval is the length of one timer minute.
	TickInterval time.Duration
	Clock        Clock
	Logger       *slog.Logger
	// Completed seeds the completed work cycle counter.
	Completed int
}

// Controller is the state machine driving work and break cycles.
type Controller struct {
	mu         sync.Mutex
	config     model.CycleConfig
	options    Options
	logger     *slog.Logger
	state      State
	countdown  int
	completed  int
	generation uint64
	interval   Timer
	display    Timer
	sound      SoundPlayer
	events     []chan Event
	stopped    bool
}

// New creates an idle Controller with the provided configuration.
func New(config model.CycleConfig, options Options) *Controller {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Minute
	}
	if options.Clock == nil {
		options.Clock = RealClock()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	completed := options.Completed
	if completed < 0 {
		completed = 0
	}

	return &Controller{
		config:    config.Normalized(),
		options:   options,
		logger:    logger.With("component", "cycle"),
		state:     StateIdle,
		completed: completed,
	}
}

// SetSoundPlayer injects the alarm player.
func (controller *Controller) SetSoundPlayer(player SoundPlayer) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.sound = player
}

// Subscribe registers a new observer channel.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	controller.mu.Lock()
	if controller.stopped {
		close(ch)
	} else {
		controller.events = append(controller.events, ch)
	}
	controller.mu.Unlock()
	return ch
}

// State returns the current state.
func (controller *Controller) State() State {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.state
}

// Countdown returns the minutes left in the current phase.
func (controller *Controller) Countdown() int {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.countdown
}

// Completed returns the number of completed work cycles.
func (controller *Controller) Completed() int {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.completed
}

// Config returns the active configuration.
func (controller *Controller) Config() model.CycleConfig {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.config
}

// Toggle starts a work phase when idle and switches the timer off otherwise.
func (controller *Controller) Toggle() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.stopped {
		return
	}

	if controller.state == StateIdle {
		controller.logger.Info("timer switched on", "work_minutes", controller.config.WorkMinutes)
		controller.enterPhaseLocked(StateWorking, controller.config.WorkMinutes, false)
		return
	}

	controller.logger.Info("timer switched off", "state", controller.state)
	controller.stopTimersLocked()
	controller.generation++
	controller.state = StateIdle
	controller.countdown = 0
	controller.emitLocked(Event{
		Type:      EventStateChange,
		State:     StateIdle,
		Completed: controller.completed,
		At:        time.Now(),
	})
}

// IntervalExpired ends the current phase and enters the next one.
func (controller *Controller) IntervalExpired() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.expireLocked()
}

// Tick advances the countdown by one minute.
func (controller *Controller) Tick() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.tickLocked()
}

// ResetCounter clears the completed work cycle counter.
func (controller *Controller) ResetCounter() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.completed = 0
	controller.logger.Info("pomodoro counter reset")
	controller.emitLocked(Event{
		Type:      EventCounter,
		State:     controller.state,
		Completed: 0,
		At:        time.Now(),
	})
}

// UpdateConfig replaces the durations used from the next phase entry on.
func (controller *Controller) UpdateConfig(config model.CycleConfig) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.config = config.Normalized()
	controller.logger.Debug("config updated",
		"work_minutes", controller.config.WorkMinutes,
		"short_break_minutes", controller.config.ShortBreakMinutes,
		"long_break_minutes", controller.config.LongBreakMinutes,
		"sound", controller.config.SoundEnabled,
	)
}

// Stop cancels both timers and closes observers.
func (controller *Controller) Stop() {
	controller.mu.Lock()
	if controller.stopped {
		controller.mu.Unlock()
		return
	}
	controller.stopped = true
	controller.stopTimersLocked()
	controller.generation++
	events := controller.events
	controller.events = nil
	controller.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (controller *Controller) expireLocked() {
	switch controller.state {
	case StateWorking:
		controller.completed++
		minutes, long := controller.config.BreakMinutes(controller.completed)
		controller.logger.Info("pomodoro expired", "completed", controller.completed, "long_break", long)

		controller.emitLocked(Event{
			Type:      EventNotify,
			State:     StateOnBreak,
			Completed: controller.completed,
			Title:     "Pomodoro expired!",
			Message:   "This pomodoro has expired!\nPlease take a break.",
			Duration:  NotifyDuration,
			At:        time.Now(),
		})
		if controller.config.SoundEnabled {
			controller.playLocked()
		}
		controller.enterPhaseLocked(StateOnBreak, minutes, long)
	case StateOnBreak:
		controller.logger.Info("break expired")
		controller.emitLocked(Event{
			Type:      EventNotify,
			State:     StateWorking,
			Completed: controller.completed,
			Title:     "A new pomodoro period started!",
			Message:   "Get busy!",
			Duration:  NotifyDuration,
			At:        time.Now(),
		})
		controller.enterPhaseLocked(StateWorking, controller.config.WorkMinutes, false)
	default:
		controller.logger.Debug("interval expired while idle")
	}
}

func (controller *Controller) tickLocked() {
	if controller.state == StateIdle || controller.countdown <= 0 {
		return
	}
	controller.countdown--
	controller.emitLocked(Event{
		Type:      EventCountdown,
		State:     controller.state,
		Countdown: controller.countdown,
		Completed: controller.completed,
		At:        time.Now(),
	})
}

func (controller *Controller) enterPhaseLocked(state State, minutes int, long bool) {
	controller.stopTimersLocked()
	controller.generation++
	controller.state = state
	controller.countdown = minutes

	generation := controller.generation
	unit := controller.options.TickInterval
	controller.interval = controller.options.Clock.AfterFunc(time.Duration(minutes)*unit, func() {
		controller.fire(generation, controller.expireLocked)
	})
	controller.display = controller.options.Clock.TickFunc(unit, func() {
		controller.fire(generation, controller.tickLocked)
	})

	controller.emitLocked(Event{
		Type:      EventStateChange,
		State:     state,
		Countdown: minutes,
		Completed: controller.completed,
		LongBreak: long,
		At:        time.Now(),
	})
}

// fire runs a timer callback unless its phase has already ended.
func (controller *Controller) fire(generation uint64, callback func()) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.stopped || generation != controller.generation {
		return
	}
	callback()
}

func (controller *Controller) stopTimersLocked() {
	if controller.interval != nil {
		controller.interval.Stop()
		controller.interval = nil
	}
	if controller.display != nil {
		controller.display.Stop()
		controller.display = nil
	}
}

func (controller *Controller) playLocked() {
	player := controller.sound
	if player == nil {
		return
	}
	logger := controller.logger
	go func() {
		if err := player.Play(); err != nil {
			logger.Warn("play alarm", "error", err)
		}
	}()
}

func (controller *Controller) emitLocked(event Event) {
	for _, ch := range controller.events {
		select {
		case ch <- event:
		default:
		}
	}
}
