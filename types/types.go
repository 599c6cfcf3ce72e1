package types

// Primitive JNI scalars.
type (
	Jboolean = uint8
	Jbyte    = int8
	Jchar    = uint16
	Jshort   = int16
	Jint     = int32
	Jlong    = int64
	Jfloat   = float32
	Jdouble  = float64
	Jsize    = Jint
)

// Object is an opaque JVM reference (jobject). The zero value is null.
type Object uintptr

// Reference subtypes. They share Object's representation.
type (
	Class        = Object
	String       = Object
	Throwable    = Object
	Array        = Object
	ObjectArray  = Object
	BooleanArray = Object
	ByteArray    = Object
	CharArray    = Object
	ShortArray   = Object
	IntArray     = Object
	LongArray    = Object
	FloatArray   = Object
	DoubleArray  = Object
	Weak         = Object
)

// MethodID identifies a resolved method. Valid while its class is loaded.
type MethodID uintptr

// FieldID identifies a resolved field. Valid while its class is loaded.
type FieldID uintptr

// EnvPtr is a raw JNIEnv pointer. It is bound to the OS thread that obtained it.
type EnvPtr uintptr

// VMPtr is a raw JavaVM pointer.
type VMPtr uintptr

// Null is the null reference.
const Null Object = 0

// IsNull reports whether o is the null reference.
func (o Object) IsNull() bool { return o == 0 }

// Bool converts a Go bool to a jboolean.
func Bool(b bool) Jboolean {
	if b {
		return True
	}
	return False
}

// IsTrue reports whether a jboolean is non-zero.
func IsTrue(b Jboolean) bool { return b != False }
