package types

import "unsafe"

// Value mirrors the jvalue union. Each member lives at offset 0, so the
// constructors write through a typed pointer instead of shifting bits, which
// keeps the layout correct regardless of byte order.
type Value uint64

func BoolValue(b bool) Value {
	var v Value
	*(*Jboolean)(unsafe.Pointer(&v)) = Bool(b)
	return v
}

func ByteValue(b Jbyte) Value {
	var v Value
	*(*Jbyte)(unsafe.Pointer(&v)) = b
	return v
}

func CharValue(c Jchar) Value {
	var v Value
	*(*Jchar)(unsafe.Pointer(&v)) = c
	return v
}

func ShortValue(s Jshort) Value {
	var v Value
	*(*Jshort)(unsafe.Pointer(&v)) = s
	return v
}

func IntValue(i Jint) Value {
	var v Value
	*(*Jint)(unsafe.Pointer(&v)) = i
	return v
}

func LongValue(j Jlong) Value {
	var v Value
	*(*Jlong)(unsafe.Pointer(&v)) = j
	return v
}

func FloatValue(f Jfloat) Value {
	var v Value
	*(*Jfloat)(unsafe.Pointer(&v)) = f
	return v
}

func DoubleValue(d Jdouble) Value {
	var v Value
	*(*Jdouble)(unsafe.Pointer(&v)) = d
	return v
}

func ObjectValue(o Object) Value {
	var v Value
	*(*Object)(unsafe.Pointer(&v)) = o
	return v
}

func (v Value) Bool() bool { return IsTrue(*(*Jboolean)(unsafe.Pointer(&v))) }
func (v Value) Byte() Jbyte { return *(*Jbyte)(unsafe.Pointer(&v)) }
func (v Value) Char() Jchar { return *(*Jchar)(unsafe.Pointer(&v)) }
func (v Value) Short() Jshort { return *(*Jshort)(unsafe.Pointer(&v)) }
func (v Value) Int() Jint { return *(*Jint)(unsafe.Pointer(&v)) }
func (v Value) Long() Jlong { return *(*Jlong)(unsafe.Pointer(&v)) }
func (v Value) Float() Jfloat { return *(*Jfloat)(unsafe.Pointer(&v)) }
func (v Value) Double() Jdouble { return *(*Jdouble)(unsafe.Pointer(&v)) }
func (v Value) Object() Object { return *(*Object)(unsafe.Pointer(&v)) }

// Values returns a pointer to the first element of args, or nil when empty.
// The slice must stay reachable until the native call returns.
func Values(args []Value) *Value {
	if len(args) == 0 {
		return nil
	}
	return &args[0]
}
