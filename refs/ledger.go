package refs

import (
	"sync"

	"github.com/wippyai/jni-runtime/types"
)

const numClasses = int(types.WeakGlobalRefType) + 1

type handleSet map[types.Object]struct{}

// Ledger records observed and released handles per reference class.
type Ledger struct {
	live      [numClasses]handleSet
	released  [numClasses]handleSet
	observers []Observer
	mu        sync.Mutex
	obsMu     sync.RWMutex
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	l := &Ledger{}
	for i := range numClasses {
		l.live[i] = make(handleSet)
		l.released[i] = make(handleSet)
	}
	return l
}

func classIndex(class types.RefType) int {
	if class < 0 || int(class) >= numClasses {
		return int(types.InvalidRefType)
	}
	return int(class)
}

// Observe records a handle returned by the VM. A previously released handle
// with the same value becomes deletable again.
func (l *Ledger) Observe(h types.Object, class types.RefType) {
	if h.IsNull() {
		return
	}
	c := classIndex(class)

	l.mu.Lock()
	delete(l.released[c], h)
	l.live[c][h] = struct{}{}
	l.mu.Unlock()

	l.notify(Event{Type: EventCreated, Handle: h, Class: class})
}

// Release marks h as deleted. It returns false when h is null or was already
// released, in which case the caller must not delete it natively.
func (l *Ledger) Release(h types.Object, class types.RefType) bool {
	if h.IsNull() {
		return false
	}
	c := classIndex(class)

	l.mu.Lock()
	if _, dup := l.released[c][h]; dup {
		l.mu.Unlock()
		l.notify(Event{Type: EventDuplicateDelete, Handle: h, Class: class})
		return false
	}
	delete(l.live[c], h)
	l.released[c][h] = struct{}{}
	l.mu.Unlock()

	l.notify(Event{Type: EventDeleted, Handle: h, Class: class})
	return true
}

// Expire records live handles the VM freed on its own, such as the locals of
// a popped frame, as deleted. Handles that are not live are skipped. It
// returns how many were expired.
func (l *Ledger) Expire(class types.RefType, hs ...types.Object) int {
	c := classIndex(class)
	expired := make([]types.Object, 0, len(hs))

	l.mu.Lock()
	for _, h := range hs {
		if _, ok := l.live[c][h]; !ok {
			continue
		}
		delete(l.live[c], h)
		l.released[c][h] = struct{}{}
		expired = append(expired, h)
	}
	l.mu.Unlock()

	for _, h := range expired {
		l.notify(Event{Type: EventDeleted, Handle: h, Class: class})
	}
	return len(expired)
}

// IsReleased reports whether h is currently recorded as deleted.
func (l *Ledger) IsReleased(h types.Object, class types.RefType) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.released[classIndex(class)][h]
	return ok
}

// Live returns the number of observed, not yet released handles of class.
// Locals the VM frees when a native method returns are not seen and stay
// counted until Reset.
func (l *Ledger) Live(class types.RefType) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.live[classIndex(class)])
}

// Released returns the number of handles of class recorded as deleted.
func (l *Ledger) Released(class types.RefType) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.released[classIndex(class)])
}

// Reset forgets every handle of class. Used when the VM invalidates a whole
// class at once, such as local references on detach.
func (l *Ledger) Reset(class types.RefType) {
	c := classIndex(class)
	l.mu.Lock()
	l.live[c] = make(handleSet)
	l.released[c] = make(handleSet)
	l.mu.Unlock()
}

// Subscribe adds an observer for lifecycle events.
func (l *Ledger) Subscribe(o Observer) {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	l.observers = append(l.observers, o)
}

// Unsubscribe removes an observer.
func (l *Ledger) Unsubscribe(o Observer) {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	for i, obs := range l.observers {
		if obs == o {
			l.observers = append(l.observers[:i], l.observers[i+1:]...)
			return
		}
	}
}

func (l *Ledger) notify(e Event) {
	l.obsMu.RLock()
	defer l.obsMu.RUnlock()
	for _, o := range l.observers {
		o.OnRefEvent(e)
	}
}
