// Package callback exposes Go functions to the VM as native methods.
//
// NewMethod checks a Go function against a method signature and wraps it in a
// C-callable trampoline:
//
//	add := callback.MustNewMethod("(II)I",
//		func(e *env.Env, this types.Object, a, b types.Jint) types.Jint {
//			return a + b
//		}, callback.WithName("add"))
//
// A Registry registers Methods on a class and keeps them alive until the class
// is unregistered. The VM holds the name and signature pointers of every
// registered method, so a Method must not be released while registered.
//
// Errors and panics never unwind into the VM. They are thrown as
// java.lang.RuntimeException and the method returns zero.
package callback
