//go:build !linux && !darwin && !windows

package platform

// Notify reports ErrUnsupported; there is no notification service to reach.
func Notify(string, string, Options) error {
	return ErrUnsupported
}
