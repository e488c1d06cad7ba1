package search

import (
	"fmt"
	"strings"
	"sync"
)

// Key is a keystroke as seen by the global shortcut dispatcher.
// Mod is the platform command modifier (ctrl or cmd).
type Key struct {
	Name string
	Mod  bool
}

func (k Key) String() string {
	if k.Mod {
		return "mod+" + k.Name
	}
	return k.Name
}

var (
	// ToggleKey opens and closes the overlay.
	ToggleKey = Key{Name: "k", Mod: true}
	// EscapeKey closes the overlay.
	EscapeKey = Key{Name: "esc"}
)

// ParseKey reads "ctrl+k", "cmd+k", "mod+k", "esc" and plain key names.
func ParseKey(s string) (Key, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Key{}, fmt.Errorf("empty key")
	}
	if s == "escape" {
		s = "esc"
	}
	mod, name, found := strings.Cut(s, "+")
	if !found {
		return Key{Name: s}, nil
	}
	switch mod {
	case "ctrl", "cmd", "meta", "mod":
	default:
		return Key{}, fmt.Errorf("unsupported modifier %q", mod)
	}
	if name == "" {
		return Key{}, fmt.Errorf("missing key after %q", mod)
	}
	return Key{Name: name, Mod: true}, nil
}

// KeyHandler reacts to a key and reports whether it consumed it.
type KeyHandler func(Key) bool

// Keyboard fans global key events out to subscribed handlers. Subscriptions
// are released explicitly, so a component that goes away leaves no handler
// behind.
type Keyboard struct {
	mu       sync.Mutex
	next     int
	handlers map[int]KeyHandler
	order    []int
}

// NewKeyboard creates an empty dispatcher.
func NewKeyboard() *Keyboard {
	return &Keyboard{handlers: make(map[int]KeyHandler)}
}

// DefaultKeyboard is the process-wide dispatcher.
var DefaultKeyboard = NewKeyboard()

// Subscribe registers h and returns its release function. Release is
// idempotent.
func (k *Keyboard) Subscribe(h KeyHandler) func() {
	k.mu.Lock()
	id := k.next
	k.next++
	k.handlers[id] = h
	k.order = append(k.order, id)
	k.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			k.mu.Lock()
			defer k.mu.Unlock()
			delete(k.handlers, id)
			for i, o := range k.order {
				if o == id {
					k.order = append(k.order[:i], k.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Len returns the number of live subscriptions.
func (k *Keyboard) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.handlers)
}

// Dispatch delivers key to handlers in subscription order until one
// consumes it. Handlers run without the dispatcher lock held.
func (k *Keyboard) Dispatch(key Key) bool {
	k.mu.Lock()
	hs := make([]KeyHandler, 0, len(k.order))
	for _, id := range k.order {
		hs = append(hs, k.handlers[id])
	}
	k.mu.Unlock()

	for _, h := range hs {
		if h(key) {
			return true
		}
	}
	return false
}
