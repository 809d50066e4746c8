package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/systray"

	"tomatray/internal/core/cycle"
	"tomatray/internal/ui/icon"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggle  func()
	OnReset   func()
	OnOptions func()
	OnQuit    func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	title      string
	idleIcon   fyne.Resource
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	resetItem  *fyne.MenuItem
	optionItem *fyne.MenuItem
	quitItem   *fyne.MenuItem
	callbacks  Callbacks
	state      cycle.State
	countdown  int
	completed  int
	tooltip    string
	setTooltip func(string)
	render     func(int, cycle.State) (fyne.Resource, error)
	onError    func(error)
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, idleIcon fyne.Resource, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:        app,
		title:      title,
		idleIcon:   idleIcon,
		callbacks:  callbacks,
		state:      cycle.StateIdle,
		setTooltip: systray.SetTooltip,
		render:     icon.Render,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("", func() { call(manager.callbacks.OnToggle) })
	manager.resetItem = fyne.NewMenuItem("", func() { call(manager.callbacks.OnReset) })
	manager.optionItem = fyne.NewMenuItem("Options", func() { call(manager.callbacks.OnOptions) })
	manager.quitItem = fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) })
	manager.quitItem.IsQuit = true

	return manager
}

// Install publishes the menu and icon and hooks the icon tap to the toggle.
// It must run after the app has started.
func (manager *Manager) Install() {
	manager.refresh()
	systray.SetOnTapped(func() {
		fyne.Do(func() { call(manager.callbacks.OnToggle) })
	})
}

// SetOnError sets the handler for icon rendering failures.
func (manager *Manager) SetOnError(handler func(error)) {
	manager.onError = handler
}

// Apply updates the tray from a controller event.
func (manager *Manager) Apply(event cycle.Event) {
	switch event.Type {
	case cycle.EventStateChange, cycle.EventCountdown:
		manager.state = event.State
		manager.countdown = event.Countdown
		manager.completed = event.Completed
	case cycle.EventCounter:
		manager.completed = event.Completed
	default:
		return
	}
	manager.refresh()
}

// Tooltip returns the current tooltip text.
func (manager *Manager) Tooltip() string {
	return manager.tooltip
}

// Menu builds the tray menu for the current state.
func (manager *Manager) Menu() *fyne.Menu {
	manager.statusItem.Label = statusLabel(manager.state, manager.countdown)
	if manager.state == cycle.StateIdle {
		manager.toggleItem.Label = "Start"
	} else {
		manager.toggleItem.Label = "Stop"
	}
	manager.resetItem.Label = fmt.Sprintf("Reset [%d pomodoro]", manager.completed)
	manager.resetItem.Disabled = manager.completed == 0

	return fyne.NewMenu(manager.title,
		manager.statusItem,
		manager.toggleItem,
		manager.resetItem,
		manager.optionItem,
		fyne.NewMenuItemSeparator(),
		manager.quitItem,
	)
}

func (manager *Manager) refresh() {
	manager.tooltip = manager.title
	if manager.state != cycle.StateIdle {
		manager.tooltip = icon.Tooltip(manager.countdown)
	}
	if manager.setTooltip != nil {
		manager.setTooltip(manager.tooltip)
	}

	menu := manager.Menu()
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(menu)
	manager.app.SetSystemTrayIcon(manager.currentIcon())
}

func (manager *Manager) currentIcon() fyne.Resource {
	if manager.state == cycle.StateIdle {
		return manager.idleIcon
	}
	resource, err := manager.render(manager.countdown, manager.state)
	if err != nil {
		if manager.onError != nil {
			manager.onError(err)
		}
		return manager.idleIcon
	}
	return resource
}

func statusLabel(state cycle.State, countdown int) string {
	switch state {
	case cycle.StateWorking:
		return fmt.Sprintf("Working: %s", icon.Tooltip(countdown))
	case cycle.StateOnBreak:
		return fmt.Sprintf("On break: %s", icon.Tooltip(countdown))
	default:
		return "Timer off"
	}
}

func call(callback func()) {
	if callback != nil {
		callback()
	}
}
