package env

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/jni-runtime/errors"
	"github.com/wippyai/jni-runtime/native"
	"github.com/wippyai/jni-runtime/refs"
	"github.com/wippyai/jni-runtime/types"
)

// Env wraps one thread-bound JNIEnv. It must only be used on the OS thread
// that obtained it, which also makes its last-exception cache thread-local.
type Env struct {
	fn      *native.EnvFuncs
	ledger  *refs.Ledger
	last    *errors.ThrowableError
	frames  [][]types.Object // locals per open frame, innermost last
	ptr     types.EnvPtr
	version types.Version
}

// Option configures an Env.
type Option func(*Env)

// WithLedger shares a reference ledger between Envs of one VM.
func WithLedger(l *refs.Ledger) Option {
	return func(e *Env) {
		if l != nil {
			e.ledger = l
		}
	}
}

// New wraps ptr using an already bound table.
func New(ptr types.EnvPtr, fn *native.EnvFuncs, opts ...Option) *Env {
	e := &Env{ptr: ptr, fn: fn}
	for _, opt := range opts {
		opt(e)
	}
	if e.ledger == nil {
		e.ledger = refs.NewLedger()
	}
	return e
}

// Envs by pointer. JNIEnv pointers are unique per attached thread.
var envs sync.Map // types.EnvPtr -> *Env

// FromPtr returns the cached Env for ptr, binding and caching a new one on
// first use.
func FromPtr(ptr types.EnvPtr, b native.Binder, opts ...Option) (*Env, error) {
	if ptr == 0 {
		return nil, errors.NilPointer(errors.PhaseBind, "JNIEnv")
	}
	if cached, ok := envs.Load(ptr); ok {
		return cached.(*Env), nil
	}
	e, err := Bind(ptr, b, opts...)
	if err != nil {
		return nil, err
	}
	actual, _ := envs.LoadOrStore(ptr, e)
	return actual.(*Env), nil
}

// Bind wraps ptr without caching it. A nil b binds with purego.
func Bind(ptr types.EnvPtr, b native.Binder, opts ...Option) (*Env, error) {
	if ptr == 0 {
		return nil, errors.NilPointer(errors.PhaseBind, "JNIEnv")
	}
	if b == nil {
		b = native.Purego
	}
	fns, err := b.BindEnv(ptr)
	if err != nil {
		return nil, err
	}
	return New(ptr, fns, opts...), nil
}

// Lookup returns the cached Env for ptr, if any.
func Lookup(ptr types.EnvPtr) (*Env, bool) {
	cached, ok := envs.Load(ptr)
	if !ok {
		return nil, false
	}
	return cached.(*Env), true
}

// Forget drops the cached Env for ptr. Called when its thread detaches.
func Forget(ptr types.EnvPtr) {
	envs.Delete(ptr)
}

// Ptr returns the raw JNIEnv pointer.
func (e *Env) Ptr() types.EnvPtr { return e.ptr }

// Funcs returns the bound function table.
func (e *Env) Funcs() *native.EnvFuncs { return e.fn }

// Ledger returns the reference ledger used by e.
func (e *Env) Ledger() *refs.Ledger { return e.ledger }

// LastException returns the cached last converted exception, or nil.
func (e *Env) LastException() *errors.ThrowableError { return e.last }

// check converts a pending exception into a ThrowableError.
// It must run before any other call is issued on e.
func (e *Env) check(op string) error {
	if types.IsTrue(e.fn.ExceptionCheck(e.ptr)) {
		return e.raise(op)
	}
	return nil
}

// raise promotes the pending exception to a global reference, releases the
// previous cache entry and installs the new one.
func (e *Env) raise(op string) error {
	thr := e.fn.ExceptionOccurred(e.ptr)
	e.fn.ExceptionClear(e.ptr)
	global := e.fn.NewGlobalRef(e.ptr, thr)
	e.fn.DeleteLocalRef(e.ptr, thr)
	e.releaseLast()
	e.fn.ExceptionClear(e.ptr)

	e.ledger.Observe(global, types.GlobalRefType)
	err := &errors.ThrowableError{Ref: global, Op: op}
	e.last = err

	Logger().Debug("converted pending exception",
		zap.String("op", op),
		zap.Uintptr("ref", uintptr(global)))
	return err
}

// ClearLastException releases the cached last exception without touching the
// pending exception state. Call it before dropping an Env whose thread stays
// attached.
func (e *Env) ClearLastException() {
	e.releaseLast()
}

func (e *Env) releaseLast() {
	if e.last == nil {
		return
	}
	if ref := e.last.Throwable(); e.ledger.Release(ref, types.GlobalRefType) {
		e.fn.DeleteGlobalRef(e.ptr, ref)
	}
	e.last = nil
}

// status handles instance operations returning a jint status.
func (e *Env) status(op string, rc types.Jint) error {
	if rc == 0 {
		return nil
	}
	if types.IsTrue(e.fn.ExceptionCheck(e.ptr)) {
		return e.raise(op)
	}
	return errors.Status(types.Status(rc), op)
}

func result[T any](e *Env, op string, v T) (T, error) {
	if err := e.check(op); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// local checks a call returning a possibly null local reference.
func (e *Env) local(op string, h types.Object) (types.Object, error) {
	if err := e.check(op); err != nil {
		return types.Null, err
	}
	e.observeLocal(h)
	return h, nil
}

// observeLocal records h with the ledger and with the innermost open frame.
func (e *Env) observeLocal(h types.Object) {
	e.ledger.Observe(h, types.LocalRefType)
	if n := len(e.frames); n > 0 && !h.IsNull() {
		e.frames[n-1] = append(e.frames[n-1], h)
	}
}

// created checks a creator call: null without a pending exception fails.
func (e *Env) created(op string, h types.Object) (types.Object, error) {
	h, err := e.local(op, h)
	if err != nil {
		return types.Null, err
	}
	if h.IsNull() {
		return types.Null, errors.NullResult(op)
	}
	return h, nil
}

func resolved[T ~uintptr](e *Env, op string, id T) (T, error) {
	id, err := result(e, op, id)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errors.NullResult(op)
	}
	return id, nil
}

// GetVersion returns the JNI version of the table.
func (e *Env) GetVersion() (types.Version, error) {
	v, err := result(e, "GetVersion", e.fn.GetVersion(e.ptr))
	return types.Version(v), err
}

// Version returns the cached JNI version, querying it once.
func (e *Env) Version() types.Version {
	if e.version == 0 {
		e.version = types.Version(e.fn.GetVersion(e.ptr))
	}
	return e.version
}
