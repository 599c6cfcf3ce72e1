// Package jniruntime drives a Java VM from Go through the Java Native Interface.
//
// The JVM library is loaded with purego, so no cgo toolchain is needed. Every
// JNI function table slot is bound to a typed Go function; failures come back
// as Go errors instead of pending exceptions or status codes.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	jniruntime/          Root package (documentation only)
//	├── vm/              Library loading, VM creation, thread attach and detach
//	├── env/             The JNIEnv interface: classes, calls, strings, arrays
//	├── callback/        Go functions registered as Java native methods
//	├── signature/       Method signature parsing and argument marshalling
//	├── refs/            Reference ledger for idempotent deletion
//	├── native/          Raw function tables and purego binding
//	├── types/           JNI scalars, handles, jvalue and constants
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Start a VM and call a static method:
//
//	lib, err := vm.Open(native.DefaultLibraryPath(""))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer lib.Close()
//
//	machine, e, err := lib.Create(vm.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	math, err := e.FindClass("java/lang/Math")
//	max, err := e.LookupStaticMethod(math, "max", "(II)I")
//	v, err := e.Invoke(types.Null, max, types.IntValue(5), types.IntValue(3))
//	fmt.Println(v.Int()) // 5
//
// # Errors
//
// Three error shapes cover every failure:
//
//   - errors.ThrowableError: a Java exception was thrown. It holds a global
//     reference to the throwable, which stays valid until the next exception
//     on the same Env or until deleted.
//   - errors.StatusError: a JNI function returned a non-zero status such as
//     JNI_EDETACHED or JNI_ENOMEM.
//   - errors.Error: a host-side failure, such as a null result with no pending
//     exception, a malformed signature or a handler with the wrong shape.
//
// # Native Methods
//
// Register Go functions as implementations of Java native methods:
//
//	add := callback.MustNewMethod("(II)I",
//	    func(e *env.Env, cls types.Object, a, b types.Jint) types.Jint {
//	        return a + b
//	    }, callback.WithName("add"))
//
//	reg := callback.NewRegistry()
//	err := reg.Register(e, cls, add)
//
// # Thread Safety
//
// An Env belongs to the OS thread that obtained it. Create and Attach lock the
// calling goroutine to its thread; VM.Do and VM.Go attach short-lived work.
// Global references and the reference ledger are safe to share across
// threads.
package jniruntime
