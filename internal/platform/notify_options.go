package platform

import "errors"

// ErrUnsupported is returned by Notify on platforms without a notification
// service.
var ErrUnsupported = errors.New("desktop notifications are not supported on this platform")

// AppName identifies the application to the notification service.
const AppName = "Pikshare"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Urgent asks the notification center to keep the message visible.
	Urgent bool
}
