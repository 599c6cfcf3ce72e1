package env

import (
	"go.uber.org/zap"

	"github.com/wippyai/jni-runtime/types"
)

// NewGlobalRef promotes obj to a global reference. A null obj yields null.
func (e *Env) NewGlobalRef(obj types.Object) (types.Object, error) {
	ref, err := result(e, "NewGlobalRef", e.fn.NewGlobalRef(e.ptr, obj))
	if err != nil {
		return types.Null, err
	}
	e.ledger.Observe(ref, types.GlobalRefType)
	return ref, nil
}

// DeleteGlobalRef deletes ref. Null and already deleted refs are ignored.
func (e *Env) DeleteGlobalRef(ref types.Object) {
	if !e.release(ref, types.GlobalRefType) {
		return
	}
	if e.last != nil && e.last.Ref == ref {
		e.last = nil
	}
	e.fn.DeleteGlobalRef(e.ptr, ref)
}

func (e *Env) NewLocalRef(obj types.Object) (types.Object, error) {
	return e.local("NewLocalRef", e.fn.NewLocalRef(e.ptr, obj))
}

// DeleteLocalRef deletes ref. Null and already deleted refs are ignored.
func (e *Env) DeleteLocalRef(ref types.Object) {
	if e.release(ref, types.LocalRefType) {
		e.fn.DeleteLocalRef(e.ptr, ref)
	}
}

func (e *Env) NewWeakGlobalRef(obj types.Object) (types.Weak, error) {
	ref, err := result(e, "NewWeakGlobalRef", e.fn.NewWeakGlobalRef(e.ptr, obj))
	if err != nil {
		return types.Null, err
	}
	e.ledger.Observe(ref, types.WeakGlobalRefType)
	return ref, nil
}

// DeleteWeakGlobalRef deletes ref. Null and already deleted refs are ignored.
func (e *Env) DeleteWeakGlobalRef(ref types.Weak) {
	if e.release(ref, types.WeakGlobalRefType) {
		e.fn.DeleteWeakGlobalRef(e.ptr, ref)
	}
}

func (e *Env) release(ref types.Object, class types.RefType) bool {
	if ref.IsNull() {
		return false
	}
	if !e.ledger.Release(ref, class) {
		Logger().Debug("suppressed duplicate delete",
			zap.Uintptr("ref", uintptr(ref)),
			zap.Stringer("class", class))
		return false
	}
	return true
}

func (e *Env) IsSameObject(a, b types.Object) bool {
	return types.IsTrue(e.fn.IsSameObject(e.ptr, a, b))
}

// GetObjectRefType returns the reference class of obj.
func (e *Env) GetObjectRefType(obj types.Object) (types.RefType, error) {
	return result(e, "GetObjectRefType", e.fn.GetObjectRefType(e.ptr, obj))
}

// PushLocalFrame opens a local reference frame with room for capacity refs.
func (e *Env) PushLocalFrame(capacity int) error {
	if err := e.status("PushLocalFrame", e.fn.PushLocalFrame(e.ptr, types.Jint(capacity))); err != nil {
		return err
	}
	e.frames = append(e.frames, nil)
	return nil
}

// PopLocalFrame frees the current frame and returns keep as a local
// reference in the previous frame. Locals observed inside the frame are
// expired in the ledger.
func (e *Env) PopLocalFrame(keep types.Object) types.Object {
	e.ledger.Release(keep, types.LocalRefType)
	ref := e.fn.PopLocalFrame(e.ptr, keep)
	if n := len(e.frames); n > 0 {
		e.ledger.Expire(types.LocalRefType, e.frames[n-1]...)
		e.frames = e.frames[:n-1]
	}
	e.observeLocal(ref)
	return ref
}

func (e *Env) EnsureLocalCapacity(capacity int) error {
	return e.status("EnsureLocalCapacity", e.fn.EnsureLocalCapacity(e.ptr, types.Jint(capacity)))
}

// WithLocalFrame runs fn inside a local frame and pops it afterwards.
func (e *Env) WithLocalFrame(capacity int, fn func() error) error {
	if err := e.PushLocalFrame(capacity); err != nil {
		return err
	}
	defer e.PopLocalFrame(types.Null)
	return fn()
}
