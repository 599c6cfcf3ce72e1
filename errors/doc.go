// Package errors provides the error taxonomy of the jni-runtime library.
//
// Failures travel on two disjoint channels that are never merged:
//
//   - StatusError carries a native status code (types.Status) and the name of
//     the failing operation. Its message is "<op>: <reason>".
//   - ThrowableError carries a global reference to an exception thrown inside
//     the VM, converted by the Env that observed it.
//
// Host-side failures (library loading, table binding, callback validation,
// null results) use the structured Error type, categorized by Phase and Kind:
//
//	err := errors.New(errors.PhaseCallback, errors.KindTypeMismatch).
//		Sig("(I)V").
//		GoType("func(string)").
//		Detail("argument 0 must be jint").
//		Build()
//
// All errors support errors.Is/As. Sentinels such as ErrDetached, ErrInvalid
// and ErrThrown match any error of the same code or channel.
package errors
