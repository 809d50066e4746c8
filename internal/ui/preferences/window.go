package preferences

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"tomatray/internal/core/model"
)

// Window handles the options UI.
type Window struct {
	window     fyne.Window
	settings   Settings
	onSave     func(Settings)
	work       *durationRow
	shortBreak *durationRow
	longBreak  *durationRow
	sound      *widget.Check
	autostart  *widget.Check
	saveButton *widget.Button
	cancel     *widget.Button
}

type durationRow struct {
	slider *widget.Slider
	value  *widget.Label
}

func newDurationRow(minutes int) *durationRow {
	row := &durationRow{
		slider: widget.NewSlider(model.MinMinutes, model.MaxMinutes),
		value:  widget.NewLabel(""),
	}
	row.slider.Step = 1
	row.slider.OnChanged = func(value float64) {
		row.value.SetText(minutesLabel(int(value)))
	}
	row.set(minutes)
	return row
}

func (row *durationRow) set(minutes int) {
	minutes = model.ClampMinutes(minutes)
	row.slider.SetValue(float64(minutes))
	row.value.SetText(minutesLabel(minutes))
}

func (row *durationRow) minutes() int {
	return model.ClampMinutes(int(row.slider.Value))
}

// New creates the options window.
func New(app fyne.App, title string, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow(title)

	prefs := &Window{
		window:     window,
		settings:   settings,
		onSave:     onSave,
		work:       newDurationRow(settings.WorkMinutes),
		shortBreak: newDurationRow(settings.ShortBreakMinutes),
		longBreak:  newDurationRow(settings.LongBreakMinutes),
		sound:      widget.NewCheck("Sound notifications", nil),
		autostart:  widget.NewCheck("Start at login", nil),
	}
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.autostart.SetChecked(settings.Autostart)

	form := container.NewVBox(
		container.NewHBox(widget.NewLabel("Pomodoro duration:"), layout.NewSpacer(), prefs.work.value),
		prefs.work.slider,
		container.NewHBox(widget.NewLabel("Short break duration:"), layout.NewSpacer(), prefs.shortBreak.value),
		prefs.shortBreak.slider,
		container.NewHBox(widget.NewLabel("Long break duration:"), layout.NewSpacer(), prefs.longBreak.value),
		prefs.longBreak.slider,
		prefs.sound,
		prefs.autostart,
	)

	prefs.saveButton = widget.NewButton("Save", prefs.handleSave)
	prefs.cancel = widget.NewButton("Cancel", prefs.handleCancel)
	buttons := container.NewHBox(prefs.saveButton, layout.NewSpacer(), prefs.cancel)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(300, 280))
	window.SetCloseIntercept(prefs.handleCancel)

	return prefs
}

// Show displays the options window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Hide closes the options window without saving.
func (prefs *Window) Hide() {
	prefs.window.Hide()
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.reset()
}

func (prefs *Window) reset() {
	prefs.work.set(prefs.settings.WorkMinutes)
	prefs.shortBreak.set(prefs.settings.ShortBreakMinutes)
	prefs.longBreak.set(prefs.settings.LongBreakMinutes)
	prefs.sound.SetChecked(prefs.settings.SoundEnabled)
	prefs.autostart.SetChecked(prefs.settings.Autostart)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	settings.WorkMinutes = prefs.work.minutes()
	settings.ShortBreakMinutes = prefs.shortBreak.minutes()
	settings.LongBreakMinutes = prefs.longBreak.minutes()
	settings.SoundEnabled = prefs.sound.Checked
	settings.Autostart = prefs.autostart.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) handleCancel() {
	prefs.reset()
	prefs.window.Hide()
}

func minutesLabel(minutes int) string {
	return fmt.Sprintf("%d minutes", minutes)
}
