// Package focus tracks whether the map container holds input focus.
//
// A Tracker observes focus and blur events on the container. Only trusted
// focus events count as focus acquisition; program code that needs to put
// the tracker into the focused state calls OnFocus directly. Blur is always
// honoured.
package focus

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/dshills/slippy/internal/dom"
)

// ErrAlreadyObserving is returned by Observe when the tracker is already
// attached to a container.
var ErrAlreadyObserving = errors.New("focus: tracker already observing a container")

// HookID identifies a registered change hook.
type HookID uint64

// Hook is called after the focus state changes.
type Hook func(focused bool)

type hookRegistration struct {
	id   HookID
	hook Hook
}

// Tracker holds the focused state of one container.
type Tracker struct {
	mu        sync.Mutex
	focused   bool
	hooks     []hookRegistration
	nextID    HookID
	container *dom.Target
	listeners []dom.ListenerID
	logger    *slog.Logger
}

// NewTracker creates an unfocused tracker. A nil logger discards output.
func NewTracker(logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tracker{logger: logger}
}

// Observe starts listening for focus and blur on container.
func (t *Tracker) Observe(container *dom.Target) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.container != nil {
		return ErrAlreadyObserving
	}
	t.container = container
	t.listeners = []dom.ListenerID{
		container.AddEventListener(dom.Focus, func(ev *dom.Event) error {
			if !ev.Trusted {
				t.logger.Debug("ignoring untrusted focus event", "target", container.Name())
				return nil
			}
			t.OnFocus()
			return nil
		}),
		container.AddEventListener(dom.Blur, func(*dom.Event) error {
			t.OnBlur()
			return nil
		}),
	}
	return nil
}

// Stop removes the tracker's container listeners. The focused state and
// hooks are kept.
func (t *Tracker) Stop() {
	t.mu.Lock()
	container, ids := t.container, t.listeners
	t.container, t.listeners = nil, nil
	t.mu.Unlock()

	if container == nil {
		return
	}
	for _, id := range ids {
		container.RemoveEventListener(id)
	}
}

// OnFocus marks the container focused. Calling it while already focused
// has no effect.
func (t *Tracker) OnFocus() {
	t.set(true)
}

// OnBlur marks the container unfocused. Calling it while already unfocused
// has no effect.
func (t *Tracker) OnBlur() {
	t.set(false)
}

// Focused reports whether the container holds focus.
func (t *Tracker) Focused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.focused
}

// OnChange registers fn to run after every focus transition.
func (t *Tracker) OnChange(fn Hook) HookID {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	t.hooks = append(t.hooks, hookRegistration{id: t.nextID, hook: fn})
	return t.nextID
}

// RemoveHook unregisters a change hook.
func (t *Tracker) RemoveHook(id HookID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.hooks {
		if t.hooks[i].id == id {
			t.hooks = append(t.hooks[:i], t.hooks[i+1:]...)
			return true
		}
	}
	return false
}

func (t *Tracker) set(focused bool) {
	t.mu.Lock()
	if t.focused == focused {
		t.mu.Unlock()
		return
	}
	t.focused = focused
	hooks := make([]Hook, len(t.hooks))
	for i, h := range t.hooks {
		hooks[i] = h.hook
	}
	t.mu.Unlock()

	t.logger.Debug("focus changed", "focused", focused)
	for _, h := range hooks {
		h(focused)
	}
}
