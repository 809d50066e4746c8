package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"tomatray/internal/platform"
	"tomatray/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	OptionWindow yamlOptionWindow `yaml:"option_window"`
	Pomodoro     yamlPomodoro     `yaml:"pomodoro"`
}

type yamlOptionWindow struct {
	Pos *yamlPosition `yaml:"pos,omitempty"`
}

type yamlPosition struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type yamlPomodoro struct {
	Collected          int   `yaml:"collected"`
	PomodoroDuration   int   `yaml:"pomodoro_duration"`
	ShortBreakDuration int   `yaml:"short_break_duration"`
	LongBreakDuration  int   `yaml:"long_break_duration"`
	SoundEnabled       *bool `yaml:"sound_enabled"`
	Autostart          bool  `yaml:"autostart"`
}

// SettingsStore reads and writes user preferences as YAML.
type SettingsStore struct {
	path string
}

// NewSettingsStore returns a store backed by the file at path.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// OpenSettingsStore returns the store in the per-user config directory.
func OpenSettingsStore(appName string, service platform.Service) (*SettingsStore, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve settings path: %w", err)
	}
	return NewSettingsStore(filepath.Join(configDir, appName, settingsFileName)), nil
}

// Path returns the settings file location.
func (store *SettingsStore) Path() string {
	return store.path
}

// Load reads user preferences.
// If the file does not exist, default settings are returned.
func (store *SettingsStore) Load() (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// Save writes user preferences.
func (store *SettingsStore) Save(settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	soundEnabled := settings.SoundEnabled
	fileData := yamlSettings{
		Pomodoro: yamlPomodoro{
			Collected:          settings.Completed,
			PomodoroDuration:   settings.WorkMinutes,
			ShortBreakDuration: settings.ShortBreakMinutes,
			LongBreakDuration:  settings.LongBreakMinutes,
			SoundEnabled:       &soundEnabled,
			Autostart:          settings.Autostart,
		},
	}
	if !settings.WindowPosition.IsZero() {
		fileData.OptionWindow.Pos = &yamlPosition{
			X: settings.WindowPosition.X,
			Y: settings.WindowPosition.Y,
		}
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	tempPath := store.path + ".tmp"
	if err := os.WriteFile(tempPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tempPath, store.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	pomodoro := fileData.Pomodoro
	if pomodoro.PomodoroDuration > 0 {
		settings.WorkMinutes = pomodoro.PomodoroDuration
	}
	if pomodoro.ShortBreakDuration > 0 {
		settings.ShortBreakMinutes = pomodoro.ShortBreakDuration
	}
	if pomodoro.LongBreakDuration > 0 {
		settings.LongBreakMinutes = pomodoro.LongBreakDuration
	}
	if pomodoro.Collected > 0 {
		settings.Completed = pomodoro.Collected
	}
	if pomodoro.SoundEnabled != nil {
		settings.SoundEnabled = *pomodoro.SoundEnabled
	}
	settings.Autostart = pomodoro.Autostart

	if pos := fileData.OptionWindow.Pos; pos != nil {
		settings.WindowPosition = preferences.Position{X: pos.X, Y: pos.Y}
	}
}
