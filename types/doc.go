// Package types defines the primitive type mapping of the JNI boundary.
//
// Scalars are fixed-width Go aliases of the JNI primitive types, so host code
// can use int32, float64, etc. directly:
//
//	JNI        Go alias    Go type
//	──────────────────────────────
//	jboolean   Jboolean    uint8
//	jbyte      Jbyte       int8
//	jchar      Jchar       uint16
//	jshort     Jshort      int16
//	jint       Jint        int32
//	jlong      Jlong       int64
//	jfloat     Jfloat      float32
//	jdouble    Jdouble     float64
//
// Handles are opaque pointer-sized values owned by the JVM. Object and its
// aliases (Class, String, Throwable, arrays, Weak) are interchangeable, as they
// are in the C header. MethodID and FieldID are distinct types because they are
// not references and are never deleted.
//
// Value is the 8-byte jvalue union used for argument arrays of the Call*A
// family. Kind is the marshalling type derived from one signature type code.
package types
