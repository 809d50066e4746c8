package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tomatray/internal/core/cycle"
)

type recordingSink struct {
	events []cycle.Event
}

func (sink *recordingSink) Apply(event cycle.Event) {
	sink.events = append(sink.events, event)
}

func TestParseFlagsDefaults(t *testing.T) {
	opts, err := parseFlags(nil)
	require.NoError(t, err)

	assert.Equal(t, "", opts.settingsPath)
	assert.Equal(t, "info", opts.logLevel)
	assert.Equal(t, time.Minute, opts.minute)
}

func TestParseFlagsOverrides(t *testing.T) {
	opts, err := parseFlags([]string{"--settings", "/tmp/s.yaml", "--log-level", "debug", "--minute", "2s"})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/s.yaml", opts.settingsPath)
	assert.Equal(t, "debug", opts.logLevel)
	assert.Equal(t, 2*time.Second, opts.minute)
}

func TestParseFlagsRejectsBadInput(t *testing.T) {
	_, err := parseFlags([]string{"--minute", "0s"})
	assert.Error(t, err)

	_, err = parseFlags([]string{"--help"})
	assert.ErrorIs(t, err, pflag.ErrHelp)
}

func TestSetupLoggingToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tomatray.log")

	logger, closeLog, err := setupLogging("debug", path)
	require.NoError(t, err)
	logger.Debug("hello", "k", 1)
	closeLog()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "msg=hello")
	assert.Contains(t, string(content), "k=1")
}

func TestSetupLoggingBadLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tomatray.log")

	logger, closeLog, err := setupLogging("loud", path)
	require.Error(t, err)
	logger.Debug("hidden")
	logger.Info("shown")
	closeLog()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "hidden")
	assert.Contains(t, string(content), "shown")
}

func TestHandleEventSendsNotifications(t *testing.T) {
	fyneApp := test.NewTempApp(t)
	sink := &recordingSink{}
	event := cycle.Event{
		Type:    cycle.EventNotify,
		State:   cycle.StateOnBreak,
		Title:   "Pomodoro expired!",
		Message: "This pomodoro has expired!\nPlease take a break.",
	}

	test.AssertNotificationSent(t, fyne.NewNotification(event.Title, event.Message), func() {
		handleEvent(fyneApp, sink, event)
	})
	assert.Empty(t, sink.events)
}

func TestHandleEventForwardsTrayUpdates(t *testing.T) {
	fyneApp := test.NewTempApp(t)
	sink := &recordingSink{}
	events := []cycle.Event{
		{Type: cycle.EventStateChange, State: cycle.StateWorking, Countdown: 25},
		{Type: cycle.EventCountdown, State: cycle.StateWorking, Countdown: 24},
		{Type: cycle.EventCounter, State: cycle.StateWorking, Completed: 0},
	}

	test.AssertNotificationSent(t, nil, func() {
		for _, event := range events {
			handleEvent(fyneApp, sink, event)
		}
	})
	assert.Equal(t, events, sink.events)
}
