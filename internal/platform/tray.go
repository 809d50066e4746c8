package platform

import "errors"

// ErrNoTray indicates no system tray host is running.
var ErrNoTray = errors.New("couldn't detect any system tray on this system")
