// Package env is the interface call dispatcher for one JNIEnv.
//
// Every slot of the JNI function table is exposed as a method of Env with the
// same name. Methods whose JNI contract allows a pending exception check it
// immediately after the native call and return it as an
// *errors.ThrowableError, discarding the raw return value:
//
//	cls, err := e.FindClass("does/not/Exist")
//	if t, ok := errors.AsThrowable(err); ok {
//		name, msg, _ := e.Describe(t)
//		...
//	}
//
// Creator operations that return null without an exception report
// errors.ErrNullResult. Status-returning operations report *errors.StatusError
// unless an exception is pending.
//
// Each Env keeps a single-slot cache of the last converted exception. The
// global reference held by a ThrowableError stays valid until the next
// conversion or ExceptionClear on the same Env; take a NewGlobalRef to keep
// it longer.
//
// Deleting a null or already deleted reference is a no-op. The reference
// ledger (package refs) decides whether a delete reaches the VM.
//
// An Env is bound to the OS thread that obtained it and is not safe for
// concurrent use.
package env
