// Package native is the ABI layer: Go mirrors of the JNI function tables and
// structs, and their binding to real function pointers.
//
// EnvFuncs and VMFuncs list every slot of JNINativeInterface_ and
// JNIInvokeInterface_ in table order. BindEnv and BindVM read the table
// behind a JNIEnv or JavaVM pointer and bind each typed field with
// purego.RegisterFunc. Open loads the JVM shared library and binds the three
// exported bootstrap symbols into LibFuncs.
//
// The tables are plain structs of Go funcs, so tests and embedders can fill
// them with Go closures instead of binding a real JVM.
package native
