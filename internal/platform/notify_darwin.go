//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify posts to Notification Center through osascript. Urgent
// notifications play the default alert sound.
func Notify(title, body string, opts Options) error {
	out, err := exec.Command("osascript", "-e", notificationScript(title, body, opts)).CombinedOutput()
	if err != nil {
		return fmt.Errorf("osascript: %w: %s", err, out)
	}
	return nil
}

func notificationScript(title, body string, opts Options) string {
	script := fmt.Sprintf("display notification %q with title %q subtitle %q", body, title, AppName)
	if opts.Urgent {
		script += ` sound name "default"`
	}
	return script
}
