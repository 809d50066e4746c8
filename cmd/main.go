package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"tomatray/internal/core/cycle"
	"tomatray/internal/platform"
	"tomatray/internal/storage"
	"tomatray/internal/ui/preferences"
	"tomatray/internal/ui/tray"
	"tomatray/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/pflag"
)

const (
	appName = "Tomatray"
	appID   = "io.tomatray.app"
)

type options struct {
	settingsPath string
	logLevel     string
	logFile      string
	minute       time.Duration
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger, closeLog, err := setupLogging(opts.logLevel, opts.logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v; using stderr\n", err)
	}
	defer closeLog()

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		logger.Warn("single instance", "error", err)
		return 0
	}
	defer func() {
		_ = guard.Release()
	}()

	service := platform.NewService()
	store, err := settingsStore(opts.settingsPath, service)
	if err != nil {
		logger.Error("settings store", "error", err)
		return 1
	}
	settings, err := store.Load()
	if err != nil {
		logger.Warn("load settings, using defaults", "path", store.Path(), "error", err)
	}
	if checker, ok := service.(platform.AutostartChecker); ok {
		if enabled, err := checker.AutostartEnabled(appName); err == nil {
			settings.Autostart = enabled
		}
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo())
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		logger.Error("system tray unsupported on this platform")
		reportFatal(fyneApp, platform.ErrNoTray)
		return 1
	}
	if err := platform.TrayAvailable(); err != nil {
		logger.Error("system tray", "error", err)
		reportFatal(fyneApp, platform.ErrNoTray)
		return 1
	}

	controller := cycle.New(settings.CycleConfig(), cycle.Options{
		TickInterval: opts.minute,
		Logger:       logger,
		Completed:    settings.Completed,
	})
	if bell, err := resources.Bell(); err != nil {
		logger.Warn("alarm sound unavailable", "error", err)
	} else {
		player := platform.NewSoundPlayer(bell.Content())
		defer func() {
			_ = player.Close()
		}()
		controller.SetSoundPlayer(player)
	}

	prefsWindow := preferences.New(fyneApp, appName+" Options", settings, func(updated preferences.Settings) {
		if updated.Autostart != settings.Autostart {
			if err := platform.ApplyAutostart(service, appName, updated.Autostart); err != nil {
				logger.Warn("autostart", "enabled", updated.Autostart, "error", err)
			}
		}
		settings = updated
		controller.UpdateConfig(settings.CycleConfig())
	})

	trayManager := tray.New(desktopApp, appName, resources.MustLogo(), tray.Callbacks{
		OnToggle:  controller.Toggle,
		OnReset:   controller.ResetCounter,
		OnOptions: prefsWindow.Show,
		OnQuit:    fyneApp.Quit,
	})
	trayManager.SetOnError(func(err error) {
		logger.Warn("render tray icon", "error", err)
	})
	trayManager.Apply(cycle.Event{Type: cycle.EventCounter, State: cycle.StateIdle, Completed: controller.Completed()})

	events := controller.Subscribe(32)
	go func() {
		for event := range events {
			fyne.Do(func() {
				handleEvent(fyneApp, trayManager, event)
			})
		}
	}()

	fyneApp.Lifecycle().SetOnStarted(trayManager.Install)
	fyneApp.Lifecycle().SetOnStopped(func() {
		controller.Stop()
		final := prefsWindow.Settings()
		final.Completed = controller.Completed()
		if err := store.Save(final); err != nil {
			logger.Warn("save settings", "path", store.Path(), "error", err)
		}
	})

	logger.Info("started", "settings", store.Path(), "completed", settings.Completed)
	fyneApp.Run()
	return 0
}

type eventSink interface {
	Apply(event cycle.Event)
}

// handleEvent sends notify events to the desktop and everything else to
// the tray. It must run on the fyne thread.
func handleEvent(fyneApp fyne.App, sink eventSink, event cycle.Event) {
	if event.Type == cycle.EventNotify {
		fyneApp.SendNotification(fyne.NewNotification(event.Title, event.Message))
		return
	}
	sink.Apply(event)
}

func parseFlags(args []string) (options, error) {
	opts := options{}
	flags := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	flags.StringVar(&opts.settingsPath, "settings", "", "settings file (default: <user config dir>/"+appName+"/settings.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFile, "log-file", "", "append logs to this file instead of stderr")
	flags.DurationVar(&opts.minute, "minute", time.Minute, "length of one timer minute")
	_ = flags.MarkHidden("minute")

	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	if opts.minute <= 0 {
		return opts, fmt.Errorf("--minute must be positive, got %s", opts.minute)
	}
	return opts, nil
}

func settingsStore(path string, service platform.Service) (*storage.SettingsStore, error) {
	if path != "" {
		return storage.NewSettingsStore(path), nil
	}
	return storage.OpenSettingsStore(appName, service)
}

// reportFatal shows err in a dialog and blocks until the user closes it.
func reportFatal(fyneApp fyne.App, err error) {
	window := fyneApp.NewWindow(appName)
	window.SetContent(widget.NewLabel(""))
	window.Resize(fyne.NewSize(360, 160))
	errorDialog := dialog.NewError(err, window)
	errorDialog.SetOnClosed(fyneApp.Quit)
	window.SetOnClosed(fyneApp.Quit)
	window.Show()
	errorDialog.Show()
	fyneApp.Run()
}
