package callback

import (
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/jni-runtime/env"
	"github.com/wippyai/jni-runtime/errors"
	"github.com/wippyai/jni-runtime/native"
	"github.com/wippyai/jni-runtime/types"
)

// Registry keeps registered Methods alive until their class is unregistered.
type Registry struct {
	mu      sync.Mutex
	classes []*binding
}

type binding struct {
	class   types.Class // global reference
	methods []*Method
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register binds methods to cls. Registering on a class that already has
// natives adds to them. Methods without a ledger adopt e's, which is the VM's.
// On failure the methods are released.
func (r *Registry) Register(e *env.Env, cls types.Class, methods ...*Method) (err error) {
	if len(methods) == 0 {
		return nil
	}
	defer func() {
		if err != nil {
			for _, m := range methods {
				m.Release()
			}
		}
	}()

	records := make([]native.NativeMethod, len(methods))
	names := make([]string, len(methods))
	for i, m := range methods {
		if m.h.ledger == nil {
			m.h.ledger = e.Ledger()
		}
		records[i] = m.Native()
		names[i] = m.Name
	}
	if err := e.RegisterNatives(cls, records); err != nil {
		return errors.Registration(className(e, cls), strings.Join(names, ","), err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if b := r.find(e, cls); b != nil {
		b.methods = append(b.methods, methods...)
		return nil
	}
	global, err := e.NewGlobalRef(cls)
	if err != nil {
		return multierr.Append(err, e.UnregisterNatives(cls))
	}
	r.classes = append(r.classes, &binding{class: global, methods: methods})

	Logger().Debug("registered methods",
		zap.Strings("methods", names),
		zap.Uintptr("class", uintptr(global)))
	return nil
}

// Unregister removes every native of cls and releases the Methods bound to it.
func (r *Registry) Unregister(e *env.Env, cls types.Class) error {
	if err := e.UnregisterNatives(cls); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range r.classes {
		if e.IsSameObject(b.class, cls) {
			r.classes = append(r.classes[:i], r.classes[i+1:]...)
			b.release(e)
			return nil
		}
	}
	return nil
}

// Len returns the number of Methods kept alive.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.classes {
		n += len(b.methods)
	}
	return n
}

// Close unregisters every class and releases all Methods. Classes that fail
// to unregister are still released.
func (r *Registry) Close(e *env.Env) error {
	r.mu.Lock()
	classes := r.classes
	r.classes = nil
	r.mu.Unlock()

	var err error
	for _, b := range classes {
		err = multierr.Append(err, e.UnregisterNatives(b.class))
		b.release(e)
	}
	return err
}

func (r *Registry) find(e *env.Env, cls types.Class) *binding {
	for _, b := range r.classes {
		if e.IsSameObject(b.class, cls) {
			return b
		}
	}
	return nil
}

func (b *binding) release(e *env.Env) {
	for _, m := range b.methods {
		m.Release()
	}
	e.DeleteGlobalRef(b.class)
}

func className(e *env.Env, cls types.Class) string {
	name, err := e.ClassName(cls)
	if err != nil {
		return "?"
	}
	return name
}
