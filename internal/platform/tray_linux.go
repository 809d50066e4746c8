//go:build linux

package platform

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const statusNotifierWatcher = "org.kde.StatusNotifierWatcher"

// TrayAvailable reports ErrNoTray unless a StatusNotifier host owns the
// watcher name on the session bus.
func TrayAvailable() error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("%w: session bus: %v", ErrNoTray, err)
	}
	defer conn.Close()

	var owned bool
	call := conn.BusObject().Call("org.freedesktop.DBus.NameHasOwner", 0, statusNotifierWatcher)
	if err := call.Store(&owned); err != nil {
		return fmt.Errorf("%w: query %s: %v", ErrNoTray, statusNotifierWatcher, err)
	}
	if !owned {
		return ErrNoTray
	}
	return nil
}
