package tray

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tomatray/internal/core/cycle"
)

func newTestManager(callbacks Callbacks) (*Manager, *[]string) {
	var tooltips []string
	manager := New(nil, "Tomatray", fyne.NewStaticResource("logo.png", nil), callbacks)
	manager.setTooltip = func(text string) { tooltips = append(tooltips, text) }
	return manager, &tooltips
}

func labels(menu *fyne.Menu) []string {
	var out []string
	for _, item := range menu.Items {
		if item.IsSeparator {
			out = append(out, "-")
			continue
		}
		out = append(out, item.Label)
	}
	return out
}

func TestIdleMenu(t *testing.T) {
	manager, _ := newTestManager(Callbacks{})

	menu := manager.Menu()
	assert.Equal(t, []string{"Timer off", "Start", "Reset [0 pomodoro]", "Options", "-", "Quit"}, labels(menu))
	assert.True(t, menu.Items[0].Disabled)
	assert.True(t, menu.Items[2].Disabled)
}

func TestApplyStateAndCountdown(t *testing.T) {
	manager, tooltips := newTestManager(Callbacks{})

	manager.Apply(cycle.Event{Type: cycle.EventStateChange, State: cycle.StateWorking, Countdown: 25})
	assert.Equal(t, "25 minutes left", manager.Tooltip())
	assert.Equal(t, "Working: 25 minutes left", manager.Menu().Items[0].Label)
	assert.Equal(t, "Stop", manager.Menu().Items[1].Label)

	manager.Apply(cycle.Event{Type: cycle.EventCountdown, State: cycle.StateWorking, Countdown: 24})
	manager.Apply(cycle.Event{Type: cycle.EventStateChange, State: cycle.StateOnBreak, Countdown: 5, Completed: 1})
	menu := manager.Menu()
	assert.Equal(t, "On break: 5 minutes left", menu.Items[0].Label)
	assert.Equal(t, "Reset [1 pomodoro]", menu.Items[2].Label)
	assert.False(t, menu.Items[2].Disabled)

	manager.Apply(cycle.Event{Type: cycle.EventStateChange, State: cycle.StateIdle, Completed: 1})
	assert.Equal(t, "Tomatray", manager.Tooltip())
	assert.Equal(t, []string{"25 minutes left", "24 minutes left", "5 minutes left", "Tomatray"}, *tooltips)
}

func TestCounterEventOnlyUpdatesCount(t *testing.T) {
	manager, _ := newTestManager(Callbacks{})
	manager.Apply(cycle.Event{Type: cycle.EventStateChange, State: cycle.StateOnBreak, Countdown: 3, Completed: 2})

	manager.Apply(cycle.Event{Type: cycle.EventCounter, State: cycle.StateOnBreak})

	menu := manager.Menu()
	assert.Equal(t, "Reset [0 pomodoro]", menu.Items[2].Label)
	assert.True(t, menu.Items[2].Disabled)
	assert.Equal(t, "On break: 3 minutes left", menu.Items[0].Label)
}

func TestNotifyEventIsIgnored(t *testing.T) {
	manager, tooltips := newTestManager(Callbacks{})

	manager.Apply(cycle.Event{Type: cycle.EventNotify, State: cycle.StateOnBreak, Title: "Pomodoro expired!"})

	assert.Empty(t, *tooltips)
	assert.Equal(t, "Timer off", manager.Menu().Items[0].Label)
}

func TestMenuActionsInvokeCallbacks(t *testing.T) {
	var calls []string
	manager, _ := newTestManager(Callbacks{
		OnToggle:  func() { calls = append(calls, "toggle") },
		OnReset:   func() { calls = append(calls, "reset") },
		OnOptions: func() { calls = append(calls, "options") },
		OnQuit:    func() { calls = append(calls, "quit") },
	})

	menu := manager.Menu()
	for _, index := range []int{1, 2, 3, 5} {
		menu.Items[index].Action()
	}
	assert.Equal(t, []string{"toggle", "reset", "options", "quit"}, calls)
	assert.True(t, menu.Items[5].IsQuit)
}

func TestRenderFailureFallsBackToIdleIcon(t *testing.T) {
	manager, _ := newTestManager(Callbacks{})
	var reported error
	manager.SetOnError(func(err error) { reported = err })
	manager.render = func(int, cycle.State) (fyne.Resource, error) {
		return nil, errors.New("encode failed")
	}
	manager.state = cycle.StateWorking

	resource := manager.currentIcon()
	require.Error(t, reported)
	assert.Equal(t, "logo.png", resource.Name())
}
