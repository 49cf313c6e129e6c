package notify

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/pikshare/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires when an annotated image is written to disk.
	EventSave Event = "save"
	// EventCopy fires when the image or a link is copied to the clipboard.
	EventCopy Event = "copy"
	// EventUpload fires when an upload returns a public link.
	EventUpload Event = "upload"
	// EventUploadFailed fires when an upload fails. It is enabled together
	// with EventUpload.
	EventUploadFailed Event = "upload-failed"
)

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Pikshare",
		Events: map[Event]EventPreference{
			EventSave:         {Template: "Saved %s"},
			EventCopy:         {Template: "Copied %s to clipboard"},
			EventUpload:       {Template: "Uploaded: %s"},
			EventUploadFailed: {Template: "Upload failed: %s"},
		},
	}
}

// LoadPreferences reads overrides from environment variables.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("PIKSHARE_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	apply := func(key string, event Event) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			eventPrefs := prefs.Events[event]
			eventPrefs.Template = v
			prefs.Events[event] = eventPrefs
		}
	}
	apply("PIKSHARE_NOTIFY_SAVE_TEXT", EventSave)
	apply("PIKSHARE_NOTIFY_COPY_TEXT", EventCopy)
	apply("PIKSHARE_NOTIFY_UPLOAD_TEXT", EventUpload)
	apply("PIKSHARE_NOTIFY_UPLOAD_FAILED_TEXT", EventUploadFailed)
	return prefs
}

// Sender delivers a formatted notification.
type Sender func(title, body string, opts platform.Options) error

// Notifier sends OS-level notifications based on the configured preferences.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    Sender
}

// New creates a new Notifier using the provided preferences.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool), send: platform.Notify}
}

// WithSender replaces the platform delivery, mostly for tests.
func (n *Notifier) WithSender(s Sender) *Notifier {
	n.send = s
	return n
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
	if event == EventUpload {
		n.enabled[EventUploadFailed] = enabled
	}
}

// Save sends a save notification including the written filename.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil && filepath.Ext(abs) == ".png" {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy sends a clipboard notification.
func (n *Notifier) Copy(detail string) {
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

// Upload reports a finished upload with its public link.
func (n *Notifier) Upload(url string) {
	n.dispatch(EventUpload, url, platform.Options{})
}

// UploadFailed reports an upload error. The notification is marked urgent.
func (n *Notifier) UploadFailed(err error) {
	if err == nil {
		return
	}
	n.dispatch(EventUploadFailed, err.Error(), platform.Options{Urgent: true})
}

func (n *Notifier) enabledFor(event Event) bool {
	if n == nil || n.enabled == nil {
		return false
	}
	return n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.enabledFor(event) {
		return
	}
	template := strings.TrimSpace(n.template(event))
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	send := n.send
	if send == nil {
		send = platform.Notify
	}
	if err := send(n.prefs.Title, body, opts); err != nil && !errors.Is(err, platform.ErrUnsupported) {
		log.Printf("notification %s: %v", event, err)
	}
}

func (n *Notifier) template(event Event) string {
	if pref, ok := n.prefs.Events[event]; ok {
		return pref.Template
	}
	return ""
}
