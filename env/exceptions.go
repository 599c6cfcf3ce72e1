package env

import (
	"github.com/wippyai/jni-runtime/errors"
	"github.com/wippyai/jni-runtime/types"
)

// Throw makes obj the pending exception. A non-zero status is returned as a
// StatusError; the thrown exception itself is left pending on purpose.
func (e *Env) Throw(obj types.Throwable) error {
	if rc := e.fn.Throw(e.ptr, obj); rc != 0 {
		return errors.Status(types.Status(rc), "Throw")
	}
	return nil
}

// ThrowNew constructs an exception of cls with msg and makes it pending.
func (e *Env) ThrowNew(cls types.Class, msg string) error {
	if rc := e.fn.ThrowNew(e.ptr, cls, msg); rc != 0 {
		return errors.Status(types.Status(rc), "ThrowNew")
	}
	return nil
}

// ThrowNewClass looks up className and throws a new instance with msg.
func (e *Env) ThrowNewClass(className, msg string) error {
	cls, err := e.FindClass(className)
	if err != nil {
		return err
	}
	defer e.DeleteLocalRef(cls)
	return e.ThrowNew(cls, msg)
}

// ExceptionOccurred returns a local reference to the pending exception, or
// null. It does not clear it.
func (e *Env) ExceptionOccurred() types.Throwable {
	thr := e.fn.ExceptionOccurred(e.ptr)
	e.observeLocal(thr)
	return thr
}

func (e *Env) ExceptionDescribe() {
	e.fn.ExceptionDescribe(e.ptr)
}

// ExceptionClear releases the cached last exception and then clears the
// pending exception.
func (e *Env) ExceptionClear() {
	e.releaseLast()
	e.fn.ExceptionClear(e.ptr)
}

// FatalError aborts the VM. It does not return.
func (e *Env) FatalError(msg string) {
	e.fn.FatalError(e.ptr, msg)
}

func (e *Env) ExceptionCheck() bool {
	return types.IsTrue(e.fn.ExceptionCheck(e.ptr))
}

// CheckException converts a pending exception left by a caller-issued call,
// such as one made through Funcs, into a ThrowableError.
func (e *Env) CheckException(op string) error {
	return e.check(op)
}

// Describe returns the Java class name and message of a converted exception.
// The message is empty when the exception carries none.
func (e *Env) Describe(t *errors.ThrowableError) (className, message string, err error) {
	if t == nil || t.Ref.IsNull() {
		return "", "", errors.NilPointer(errors.PhaseInvoke, "throwable")
	}

	// A failure below replaces the cache entry, which would release t.Ref.
	own := e.fn.NewGlobalRef(e.ptr, t.Ref)
	if own.IsNull() {
		return "", "", errors.NullResult("NewGlobalRef")
	}
	defer e.fn.DeleteGlobalRef(e.ptr, own)

	cls, err := e.GetObjectClass(own)
	if err != nil {
		return "", "", err
	}
	defer e.DeleteLocalRef(cls)

	className, err = e.ClassName(cls)
	if err != nil {
		return "", "", err
	}

	getMessage, err := e.GetMethodID(cls, "getMessage", "()Ljava/lang/String;")
	if err != nil {
		return className, "", err
	}
	msg, err := e.CallObjectMethod(own, getMessage)
	if err != nil || msg.IsNull() {
		return className, "", err
	}
	defer e.DeleteLocalRef(msg)

	message, err = e.GoString(msg)
	return className, message, err
}
