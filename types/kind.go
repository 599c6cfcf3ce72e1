package types

import "reflect"

// Kind is a marshalling type: the native representation of one signature
// type code.
type Kind uint8

const (
	KindVoid Kind = iota
	KindBoolean
	KindByte
	KindChar
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindObject
	KindString
	KindClass
	KindBooleanArray
	KindByteArray
	KindCharArray
	KindShortArray
	KindIntArray
	KindLongArray
	KindFloatArray
	KindDoubleArray
	KindObjectArray
)

var kindNames = [...]string{
	KindVoid:         "void",
	KindBoolean:      "jboolean",
	KindByte:         "jbyte",
	KindChar:         "jchar",
	KindShort:        "jshort",
	KindInt:          "jint",
	KindLong:         "jlong",
	KindFloat:        "jfloat",
	KindDouble:       "jdouble",
	KindObject:       "jobject",
	KindString:       "jstring",
	KindClass:        "jclass",
	KindBooleanArray: "jbooleanArray",
	KindByteArray:    "jbyteArray",
	KindCharArray:    "jcharArray",
	KindShortArray:   "jshortArray",
	KindIntArray:     "jintArray",
	KindLongArray:    "jlongArray",
	KindFloatArray:   "jfloatArray",
	KindDoubleArray:  "jdoubleArray",
	KindObjectArray:  "jobjectArray",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsPrimitive reports whether k is a scalar (not void, not a reference).
func (k Kind) IsPrimitive() bool {
	return k >= KindBoolean && k <= KindDouble
}

// IsReference reports whether k is passed as a handle.
func (k Kind) IsReference() bool {
	return k >= KindObject
}

var (
	typeBoolean = reflect.TypeFor[Jboolean]()
	typeByte    = reflect.TypeFor[Jbyte]()
	typeChar    = reflect.TypeFor[Jchar]()
	typeShort   = reflect.TypeFor[Jshort]()
	typeInt     = reflect.TypeFor[Jint]()
	typeLong    = reflect.TypeFor[Jlong]()
	typeFloat   = reflect.TypeFor[Jfloat]()
	typeDouble  = reflect.TypeFor[Jdouble]()
	typeObject  = reflect.TypeFor[Object]()
)

// GoType returns the Go type used for k at the C ABI boundary.
// KindVoid returns nil.
func (k Kind) GoType() reflect.Type {
	switch k {
	case KindVoid:
		return nil
	case KindBoolean:
		return typeBoolean
	case KindByte:
		return typeByte
	case KindChar:
		return typeChar
	case KindShort:
		return typeShort
	case KindInt:
		return typeInt
	case KindLong:
		return typeLong
	case KindFloat:
		return typeFloat
	case KindDouble:
		return typeDouble
	default:
		return typeObject
	}
}

// PrimitiveKind maps a primitive signature code to its Kind.
// 'V' maps to KindVoid.
func PrimitiveKind(code byte) (Kind, bool) {
	switch code {
	case 'V':
		return KindVoid, true
	case 'Z':
		return KindBoolean, true
	case 'B':
		return KindByte, true
	case 'C':
		return KindChar, true
	case 'S':
		return KindShort, true
	case 'I':
		return KindInt, true
	case 'J':
		return KindLong, true
	case 'F':
		return KindFloat, true
	case 'D':
		return KindDouble, true
	}
	return 0, false
}

// ArrayOf returns the one-dimensional array kind of a primitive kind.
func ArrayOf(k Kind) Kind {
	if !k.IsPrimitive() {
		return KindObjectArray
	}
	return KindBooleanArray + (k - KindBoolean)
}
