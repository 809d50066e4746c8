package cycle

import (
	"sync"
	"time"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop()
}

// Clock schedules the interval and display callbacks.
type Clock interface {
	// AfterFunc calls fire once after d.
	AfterFunc(d time.Duration, fire func()) Timer
	// TickFunc calls fire every d until stopped.
	TickFunc(d time.Duration, fire func()) Timer
}

// RealClock returns a Clock backed by the runtime timers.
func RealClock() Clock {
	return realClock{}
}

type realClock struct{}

type afterTimer struct {
	timer *time.Timer
}

func (realClock) AfterFunc(d time.Duration, fire func()) Timer {
	return &afterTimer{timer: time.AfterFunc(d, fire)}
}

func (timer *afterTimer) Stop() {
	timer.timer.Stop()
}

type tickTimer struct {
	stopCh chan struct{}
	once   sync.Once
}

func (realClock) TickFunc(d time.Duration, fire func()) Timer {
	timer := &tickTimer{stopCh: make(chan struct{})}
	ticker := time.NewTicker(d)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-timer.stopCh:
				return
			case <-ticker.C:
				fire()
			}
		}
	}()
	return timer
}

func (timer *tickTimer) Stop() {
	timer.once.Do(func() {
		close(timer.stopCh)
	})
}
