package editor

import (
	"sync"
	"unicode"

	"golang.org/x/mobile/event/key"
)

// KeyShortcut describes a keyboard combination that triggers an action.
// A shortcut matches either on Rune or on Code.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// Shortcuts is a helper to easily satisfy the KeyboardShortcuts interface.
type Shortcuts []KeyShortcut

func (s Shortcuts) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// lookupKeys returns the shortcut forms an event can match, rune first.
func lookupKeys(e key.Event) []KeyShortcut {
	var out []KeyShortcut
	if e.Rune > 0 && unicode.IsPrint(e.Rune) {
		out = append(out, KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: e.Modifiers})
	}
	if e.Code != key.CodeUnknown {
		out = append(out, KeyShortcut{Code: e.Code, Modifiers: e.Modifiers})
	}
	return out
}

// KeyHandler consumes a key event and reports whether it was handled.
type KeyHandler func(key.Event) bool

// KeyDispatcher fans key events out to subscribers in subscription order
// until one handles the event. It is safe for concurrent use.
type KeyDispatcher struct {
	mu   sync.Mutex
	next int
	subs []subscription
}

type subscription struct {
	id int
	fn KeyHandler
}

// Subscribe registers fn and returns a function that removes it. The
// returned function may be called more than once.
func (d *KeyDispatcher) Subscribe(fn KeyHandler) (unsubscribe func()) {
	d.mu.Lock()
	id := d.next
	d.next++
	d.subs = append(d.subs, subscription{id: id, fn: fn})
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			for i, s := range d.subs {
				if s.id == id {
					d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Len returns the number of live subscriptions.
func (d *KeyDispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}

// Dispatch delivers e. Handlers run without the dispatcher lock held.
func (d *KeyDispatcher) Dispatch(e key.Event) bool {
	d.mu.Lock()
	subs := make([]subscription, len(d.subs))
	copy(subs, d.subs)
	d.mu.Unlock()
	for _, s := range subs {
		if s.fn(e) {
			return true
		}
	}
	return false
}
