package dom

import "sync"

// ListenerID identifies a registered listener.
type ListenerID uint64

// Listener handles an event. A returned error stops dispatch and is
// returned to the caller of Dispatch.
type Listener func(ev *Event) error

type registration struct {
	id       ListenerID
	typ      EventType
	listener Listener
	removed  bool
}

// Target is a node that receives events and forwards bubbling events to
// its parent.
type Target struct {
	name   string
	parent *Target

	mu        sync.Mutex
	listeners map[EventType][]*registration
	byID      map[ListenerID]*registration
	nextID    ListenerID
}

// NewTarget creates a target. parent may be nil for the document root.
func NewTarget(name string, parent *Target) *Target {
	return &Target{
		name:      name,
		parent:    parent,
		listeners: make(map[EventType][]*registration),
		byID:      make(map[ListenerID]*registration),
	}
}

// NewDocument creates a root target named "document".
func NewDocument() *Target {
	return NewTarget("document", nil)
}

// Name returns the target name.
func (t *Target) Name() string { return t.name }

// Parent returns the parent target, or nil for the root.
func (t *Target) Parent() *Target { return t.parent }

// AddEventListener registers l for events of type typ and returns its ID.
// Listeners run in registration order. A nil listener is ignored and
// yields ID 0.
func (t *Target) AddEventListener(typ EventType, l Listener) ListenerID {
	if l == nil {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	reg := &registration{id: t.nextID, typ: typ, listener: l}
	t.listeners[typ] = append(t.listeners[typ], reg)
	t.byID[reg.id] = reg
	return reg.id
}

// RemoveEventListener unregisters a listener. A listener removed during
// dispatch is not called if it has not run yet.
// It returns false if id is not registered.
func (t *Target) RemoveEventListener(id ListenerID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	reg, ok := t.byID[id]
	if !ok {
		return false
	}
	reg.removed = true
	delete(t.byID, id)

	regs := t.listeners[reg.typ]
	for i, r := range regs {
		if r == reg {
			t.listeners[reg.typ] = append(regs[:i:i], regs[i+1:]...)
			break
		}
	}
	if len(t.listeners[reg.typ]) == 0 {
		delete(t.listeners, reg.typ)
	}
	return true
}

// ListenerCount returns the number of listeners registered for typ.
func (t *Target) ListenerCount(typ EventType) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners[typ])
}

// Dispatch delivers ev to this target and, for bubbling types, to each
// ancestor in turn. It returns false if a listener called PreventDefault.
// The first listener error aborts dispatch and is returned.
func (t *Target) Dispatch(ev *Event) (bool, error) {
	ev.target = t
	defer func() { ev.currentTarget = nil }()

	for cur := t; cur != nil; cur = cur.parent {
		ev.currentTarget = cur
		if err := cur.invoke(ev); err != nil {
			return !ev.defaultPrevented, err
		}
		if ev.stopped || !ev.Type.Bubbles() {
			break
		}
	}
	return !ev.defaultPrevented, nil
}

func (t *Target) invoke(ev *Event) error {
	t.mu.Lock()
	regs := append([]*registration(nil), t.listeners[ev.Type]...)
	t.mu.Unlock()

	for _, reg := range regs {
		t.mu.Lock()
		removed := reg.removed
		t.mu.Unlock()
		if removed {
			continue
		}
		if err := reg.listener(ev); err != nil {
			return err
		}
		if ev.stoppedNow {
			return nil
		}
	}
	return nil
}
