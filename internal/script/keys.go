package script

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/mobile/event/key"
)

var namedCodes = map[string]key.Code{
	"enter":     key.CodeReturnEnter,
	"return":    key.CodeReturnEnter,
	"escape":    key.CodeEscape,
	"esc":       key.CodeEscape,
	"backspace": key.CodeDeleteBackspace,
	"delete":    key.CodeDeleteForward,
	"del":       key.CodeDeleteForward,
	"tab":       key.CodeTab,
	"space":     key.CodeSpacebar,
}

var modifierNames = map[string]key.Modifiers{
	"ctrl":    key.ModControl,
	"control": key.ModControl,
	"shift":   key.ModShift,
	"alt":     key.ModAlt,
	"meta":    key.ModMeta,
	"super":   key.ModMeta,
}

// ParseKey turns a chord such as "ctrl+z", "ctrl+shift+z", "delete" or "a"
// into a key press event.
func ParseKey(spec string) (key.Event, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(spec)), "+")
	e := key.Event{Rune: -1, Direction: key.DirPress}
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return key.Event{}, fmt.Errorf("invalid key %q", spec)
		}
		if i < len(parts)-1 {
			m, ok := modifierNames[p]
			if !ok {
				return key.Event{}, fmt.Errorf("unknown modifier %q in %q", p, spec)
			}
			e.Modifiers |= m
			continue
		}
		if code, ok := namedCodes[p]; ok {
			e.Code = code
			if code == key.CodeSpacebar {
				e.Rune = ' '
			}
			continue
		}
		r, size := utf8.DecodeRuneInString(p)
		if size != len(p) {
			return key.Event{}, fmt.Errorf("unknown key %q", spec)
		}
		e.Rune = r
		if r >= 'a' && r <= 'z' {
			e.Code = key.CodeA + key.Code(r-'a')
			if e.Modifiers&key.ModShift != 0 {
				e.Rune = r - 'a' + 'A'
			}
		}
	}
	return e, nil
}
