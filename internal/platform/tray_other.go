//go:build !linux

package platform

// TrayAvailable always succeeds; Windows and macOS always provide a tray.
func TrayAvailable() error {
	return nil
}
