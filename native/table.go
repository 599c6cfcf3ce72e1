package native

import (
	"unsafe"

	"github.com/wippyai/jni-runtime/types"
)

// EnvFuncs mirrors JNINativeInterface_. Field i is slot i of the table, so the
// field order is part of the ABI and must never change.
//
// Variadic and va_list slots are kept as raw uintptr placeholders; every call
// family is reached through its jvalue-array (A) form instead. Fields tagged
// with "since" exist only in tables of at least that version and stay nil
// when the table is older.
type EnvFuncs struct {
	Reserved0  uintptr
	Reserved1  uintptr
	Reserved2  uintptr
	Reserved3  uintptr
	GetVersion func(env types.EnvPtr) types.Jint

	// Classes
	DefineClass         func(env types.EnvPtr, name string, loader types.Object, buf unsafe.Pointer, n types.Jsize) types.Class
	FindClass           func(env types.EnvPtr, name string) types.Class
	FromReflectedMethod func(env types.EnvPtr, method types.Object) types.MethodID
	FromReflectedField  func(env types.EnvPtr, field types.Object) types.FieldID
	ToReflectedMethod   func(env types.EnvPtr, cls types.Class, mid types.MethodID, isStatic types.Jboolean) types.Object
	GetSuperclass       func(env types.EnvPtr, cls types.Class) types.Class
	IsAssignableFrom    func(env types.EnvPtr, sub, sup types.Class) types.Jboolean
	ToReflectedField    func(env types.EnvPtr, cls types.Class, fid types.FieldID, isStatic types.Jboolean) types.Object

	// Exceptions
	Throw             func(env types.EnvPtr, obj types.Throwable) types.Jint
	ThrowNew          func(env types.EnvPtr, cls types.Class, msg string) types.Jint
	ExceptionOccurred func(env types.EnvPtr) types.Throwable
	ExceptionDescribe func(env types.EnvPtr)
	ExceptionClear    func(env types.EnvPtr)
	FatalError        func(env types.EnvPtr, msg string)

	// References
	PushLocalFrame      func(env types.EnvPtr, capacity types.Jint) types.Jint
	PopLocalFrame       func(env types.EnvPtr, result types.Object) types.Object
	NewGlobalRef        func(env types.EnvPtr, obj types.Object) types.Object
	DeleteGlobalRef     func(env types.EnvPtr, obj types.Object)
	DeleteLocalRef      func(env types.EnvPtr, obj types.Object)
	IsSameObject        func(env types.EnvPtr, a, b types.Object) types.Jboolean
	NewLocalRef         func(env types.EnvPtr, obj types.Object) types.Object
	EnsureLocalCapacity func(env types.EnvPtr, capacity types.Jint) types.Jint

	// Objects
	AllocObject    func(env types.EnvPtr, cls types.Class) types.Object
	NewObject      uintptr
	NewObjectV     uintptr
	NewObjectA     func(env types.EnvPtr, cls types.Class, mid types.MethodID, args *types.Value) types.Object
	GetObjectClass func(env types.EnvPtr, obj types.Object) types.Class
	IsInstanceOf   func(env types.EnvPtr, obj types.Object, cls types.Class) types.Jboolean
	GetMethodID    func(env types.EnvPtr, cls types.Class, name, sig string) types.MethodID

	// Instance methods
	CallObjectMethod   uintptr
	CallObjectMethodV  uintptr
	CallObjectMethodA  func(env types.EnvPtr, obj types.Object, mid types.MethodID, args *types.Value) types.Object
	CallBooleanMethod  uintptr
	CallBooleanMethodV uintptr
	CallBooleanMethodA func(env types.EnvPtr, obj types.Object, mid types.MethodID, args *types.Value) types.Jboolean
	CallByteMethod     uintptr
	CallByteMethodV    uintptr
	CallByteMethodA    func(env types.EnvPtr, obj types.Object, mid types.MethodID, args *types.Value) types.Jbyte
	CallCharMethod     uintptr
	CallCharMethodV    uintptr
	CallCharMethodA    func(env types.EnvPtr, obj types.Object, mid types.MethodID, args *types.Value) types.Jchar
	CallShortMethod    uintptr
	CallShortMethodV   uintptr
	CallShortMethodA   func(env types.EnvPtr, obj types.Object, mid types.MethodID, args *types.Value) types.Jshort
	CallIntMethod      uintptr
	CallIntMethodV     uintptr
	CallIntMethodA     func(env types.EnvPtr, obj types.Object, mid types.MethodID, args *types.Value) types.Jint
	CallLongMethod     uintptr
	CallLongMethodV    uintptr
	CallLongMethodA    func(env types.EnvPtr, obj types.Object, mid types.MethodID, args *types.Value) types.Jlong
	CallFloatMethod    uintptr
	CallFloatMethodV   uintptr
	CallFloatMethodA   func(env types.EnvPtr, obj types.Object, mid types.MethodID, args *types.Value) types.Jfloat
	CallDoubleMethod   uintptr
	CallDoubleMethodV  uintptr
	CallDoubleMethodA  func(env types.EnvPtr, obj types.Object, mid types.MethodID, args *types.Value) types.Jdouble
	CallVoidMethod     uintptr
	CallVoidMethodV    uintptr
	CallVoidMethodA    func(env types.EnvPtr, obj types.Object, mid types.MethodID, args *types.Value)

	// Nonvirtual methods
	CallNonvirtualObjectMethod   uintptr
	CallNonvirtualObjectMethodV  uintptr
	CallNonvirtualObjectMethodA  func(env types.EnvPtr, obj types.Object, cls types.Class, mid types.MethodID, args *types.Value) types.Object
	CallNonvirtualBooleanMethod  uintptr
	CallNonvirtualBooleanMethodV uintptr
	CallNonvirtualBooleanMethodA func(env types.EnvPtr, obj types.Object, cls types.Class, mid types.MethodID, args *types.Value) types.Jboolean
	CallNonvirtualByteMethod     uintptr
	CallNonvirtualByteMethodV    uintptr
	CallNonvirtualByteMethodA    func(env types.EnvPtr, obj types.Object, cls types.Class, mid types.MethodID, args *types.Value) types.Jbyte
	CallNonvirtualCharMethod     uintptr
	CallNonvirtualCharMethodV    uintptr
	CallNonvirtualCharMethodA    func(env types.EnvPtr, obj types.Object, cls types.Class, mid types.MethodID, args *types.Value) types.Jchar
	CallNonvirtualShortMethod    uintptr
	CallNonvirtualShortMethodV   uintptr
	CallNonvirtualShortMethodA   func(env types.EnvPtr, obj types.Object, cls types.Class, mid types.MethodID, args *types.Value) types.Jshort
	CallNonvirtualIntMethod      uintptr
	CallNonvirtualIntMethodV     uintptr
	CallNonvirtualIntMethodA     func(env types.EnvPtr, obj types.Object, cls types.Class, mid types.MethodID, args *types.Value) types.Jint
	CallNonvirtualLongMethod     uintptr
	CallNonvirtualLongMethodV    uintptr
	CallNonvirtualLongMethodA    func(env types.EnvPtr, obj types.Object, cls types.Class, mid types.MethodID, args *types.Value) types.Jlong
	CallNonvirtualFloatMethod    uintptr
	CallNonvirtualFloatMethodV   uintptr
	CallNonvirtualFloatMethodA   func(env types.EnvPtr, obj types.Object, cls types.Class, mid types.MethodID, args *types.Value) types.Jfloat
	CallNonvirtualDoubleMethod   uintptr
	CallNonvirtualDoubleMethodV  uintptr
	CallNonvirtualDoubleMethodA  func(env types.EnvPtr, obj types.Object, cls types.Class, mid types.MethodID, args *types.Value) types.Jdouble
	CallNonvirtualVoidMethod     uintptr
	CallNonvirtualVoidMethodV    uintptr
	CallNonvirtualVoidMethodA    func(env types.EnvPtr, obj types.Object, cls types.Class, mid types.MethodID, args *types.Value)

	// Instance fields
	GetFieldID      func(env types.EnvPtr, cls types.Class, name, sig string) types.FieldID
	GetObjectField  func(env types.EnvPtr, obj types.Object, fid types.FieldID) types.Object
	GetBooleanField func(env types.EnvPtr, obj types.Object, fid types.FieldID) types.Jboolean
	GetByteField    func(env types.EnvPtr, obj types.Object, fid types.FieldID) types.Jbyte
	GetCharField    func(env types.EnvPtr, obj types.Object, fid types.FieldID) types.Jchar
	GetShortField   func(env types.EnvPtr, obj types.Object, fid types.FieldID) types.Jshort
	GetIntField     func(env types.EnvPtr, obj types.Object, fid types.FieldID) types.Jint
	GetLongField    func(env types.EnvPtr, obj types.Object, fid types.FieldID) types.Jlong
	GetFloatField   func(env types.EnvPtr, obj types.Object, fid types.FieldID) types.Jfloat
	GetDoubleField  func(env types.EnvPtr, obj types.Object, fid types.FieldID) types.Jdouble
	SetObjectField  func(env types.EnvPtr, obj types.Object, fid types.FieldID, val types.Object)
	SetBooleanField func(env types.EnvPtr, obj types.Object, fid types.FieldID, val types.Jboolean)
	SetByteField    func(env types.EnvPtr, obj types.Object, fid types.FieldID, val types.Jbyte)
	SetCharField    func(env types.EnvPtr, obj types.Object, fid types.FieldID, val types.Jchar)
	SetShortField   func(env types.EnvPtr, obj types.Object, fid types.FieldID, val types.Jshort)
	SetIntField     func(env types.EnvPtr, obj types.Object, fid types.FieldID, val types.Jint)
	SetLongField    func(env types.EnvPtr, obj types.Object, fid types.FieldID, val types.Jlong)
	SetFloatField   func(env types.EnvPtr, obj types.Object, fid types.FieldID, val types.Jfloat)
	SetDoubleField  func(env types.EnvPtr, obj types.Object, fid types.FieldID, val types.Jdouble)

	// Static methods
	GetStaticMethodID        func(env types.EnvPtr, cls types.Class, name, sig string) types.MethodID
	CallStaticObjectMethod   uintptr
	CallStaticObjectMethodV  uintptr
	CallStaticObjectMethodA  func(env types.EnvPtr, cls types.Class, mid types.MethodID, args *types.Value) types.Object
	CallStaticBooleanMethod  uintptr
	CallStaticBooleanMethodV uintptr
	CallStaticBooleanMethodA func(env types.EnvPtr, cls types.Class, mid types.MethodID, args *types.Value) types.Jboolean
	CallStaticByteMethod     uintptr
	CallStaticByteMethodV    uintptr
	CallStaticByteMethodA    func(env types.EnvPtr, cls types.Class, mid types.MethodID, args *types.Value) types.Jbyte
	CallStaticCharMethod     uintptr
	CallStaticCharMethodV    uintptr
	CallStaticCharMethodA    func(env types.EnvPtr, cls types.Class, mid types.MethodID, args *types.Value) types.Jchar
	CallStaticShortMethod    uintptr
	CallStaticShortMethodV   uintptr
	CallStaticShortMethodA   func(env types.EnvPtr, cls types.Class, mid types.MethodID, args *types.Value) types.Jshort
	CallStaticIntMethod      uintptr
	CallStaticIntMethodV     uintptr
	CallStaticIntMethodA     func(env types.EnvPtr, cls types.Class, mid types.MethodID, args *types.Value) types.Jint
	CallStaticLongMethod     uintptr
	CallStaticLongMethodV    uintptr
	CallStaticLongMethodA    func(env types.EnvPtr, cls types.Class, mid types.MethodID, args *types.Value) types.Jlong
	CallStaticFloatMethod    uintptr
	CallStaticFloatMethodV   uintptr
	CallStaticFloatMethodA   func(env types.EnvPtr, cls types.Class, mid types.MethodID, args *types.Value) types.Jfloat
	CallStaticDoubleMethod   uintptr
	CallStaticDoubleMethodV  uintptr
	CallStaticDoubleMethodA  func(env types.EnvPtr, cls types.Class, mid types.MethodID, args *types.Value) types.Jdouble
	CallStaticVoidMethod     uintptr
	CallStaticVoidMethodV    uintptr
	CallStaticVoidMethodA    func(env types.EnvPtr, cls types.Class, mid types.MethodID, args *types.Value)

	// Static fields
	GetStaticFieldID      func(env types.EnvPtr, cls types.Class, name, sig string) types.FieldID
	GetStaticObjectField  func(env types.EnvPtr, cls types.Class, fid types.FieldID) types.Object
	GetStaticBooleanField func(env types.EnvPtr, cls types.Class, fid types.FieldID) types.Jboolean
	GetStaticByteField    func(env types.EnvPtr, cls types.Class, fid types.FieldID) types.Jbyte
	GetStaticCharField    func(env types.EnvPtr, cls types.Class, fid types.FieldID) types.Jchar
	GetStaticShortField   func(env types.EnvPtr, cls types.Class, fid types.FieldID) types.Jshort
	GetStaticIntField     func(env types.EnvPtr, cls types.Class, fid types.FieldID) types.Jint
	GetStaticLongField    func(env types.EnvPtr, cls types.Class, fid types.FieldID) types.Jlong
	GetStaticFloatField   func(env types.EnvPtr, cls types.Class, fid types.FieldID) types.Jfloat
	GetStaticDoubleField  func(env types.EnvPtr, cls types.Class, fid types.FieldID) types.Jdouble
	SetStaticObjectField  func(env types.EnvPtr, cls types.Class, fid types.FieldID, val types.Object)
	SetStaticBooleanField func(env types.EnvPtr, cls types.Class, fid types.FieldID, val types.Jboolean)
	SetStaticByteField    func(env types.EnvPtr, cls types.Class, fid types.FieldID, val types.Jbyte)
	SetStaticCharField    func(env types.EnvPtr, cls types.Class, fid types.FieldID, val types.Jchar)
	SetStaticShortField   func(env types.EnvPtr, cls types.Class, fid types.FieldID, val types.Jshort)
	SetStaticIntField     func(env types.EnvPtr, cls types.Class, fid types.FieldID, val types.Jint)
	SetStaticLongField    func(env types.EnvPtr, cls types.Class, fid types.FieldID, val types.Jlong)
	SetStaticFloatField   func(env types.EnvPtr, cls types.Class, fid types.FieldID, val types.Jfloat)
	SetStaticDoubleField  func(env types.EnvPtr, cls types.Class, fid types.FieldID, val types.Jdouble)

	// Strings
	NewString             func(env types.EnvPtr, chars unsafe.Pointer, n types.Jsize) types.String
	GetStringLength       func(env types.EnvPtr, s types.String) types.Jsize
	GetStringChars        func(env types.EnvPtr, s types.String, isCopy *types.Jboolean) unsafe.Pointer
	ReleaseStringChars    func(env types.EnvPtr, s types.String, chars unsafe.Pointer)
	NewStringUTF          func(env types.EnvPtr, utf string) types.String
	GetStringUTFLength    func(env types.EnvPtr, s types.String) types.Jsize
	GetStringUTFChars     func(env types.EnvPtr, s types.String, isCopy *types.Jboolean) unsafe.Pointer
	ReleaseStringUTFChars func(env types.EnvPtr, s types.String, chars unsafe.Pointer)

	// Arrays
	GetArrayLength              func(env types.EnvPtr, arr types.Array) types.Jsize
	NewObjectArray              func(env types.EnvPtr, n types.Jsize, cls types.Class, init types.Object) types.ObjectArray
	GetObjectArrayElement       func(env types.EnvPtr, arr types.ObjectArray, i types.Jsize) types.Object
	SetObjectArrayElement       func(env types.EnvPtr, arr types.ObjectArray, i types.Jsize, val types.Object)
	NewBooleanArray             func(env types.EnvPtr, n types.Jsize) types.Array
	NewByteArray                func(env types.EnvPtr, n types.Jsize) types.Array
	NewCharArray                func(env types.EnvPtr, n types.Jsize) types.Array
	NewShortArray               func(env types.EnvPtr, n types.Jsize) types.Array
	NewIntArray                 func(env types.EnvPtr, n types.Jsize) types.Array
	NewLongArray                func(env types.EnvPtr, n types.Jsize) types.Array
	NewFloatArray               func(env types.EnvPtr, n types.Jsize) types.Array
	NewDoubleArray              func(env types.EnvPtr, n types.Jsize) types.Array
	GetBooleanArrayElements     func(env types.EnvPtr, arr types.Array, isCopy *types.Jboolean) unsafe.Pointer
	GetByteArrayElements        func(env types.EnvPtr, arr types.Array, isCopy *types.Jboolean) unsafe.Pointer
	GetCharArrayElements        func(env types.EnvPtr, arr types.Array, isCopy *types.Jboolean) unsafe.Pointer
	GetShortArrayElements       func(env types.EnvPtr, arr types.Array, isCopy *types.Jboolean) unsafe.Pointer
	GetIntArrayElements         func(env types.EnvPtr, arr types.Array, isCopy *types.Jboolean) unsafe.Pointer
	GetLongArrayElements        func(env types.EnvPtr, arr types.Array, isCopy *types.Jboolean) unsafe.Pointer
	GetFloatArrayElements       func(env types.EnvPtr, arr types.Array, isCopy *types.Jboolean) unsafe.Pointer
	GetDoubleArrayElements      func(env types.EnvPtr, arr types.Array, isCopy *types.Jboolean) unsafe.Pointer
	ReleaseBooleanArrayElements func(env types.EnvPtr, arr types.Array, elems unsafe.Pointer, mode types.Jint)
	ReleaseByteArrayElements    func(env types.EnvPtr, arr types.Array, elems unsafe.Pointer, mode types.Jint)
	ReleaseCharArrayElements    func(env types.EnvPtr, arr types.Array, elems unsafe.Pointer, mode types.Jint)
	ReleaseShortArrayElements   func(env types.EnvPtr, arr types.Array, elems unsafe.Pointer, mode types.Jint)
	ReleaseIntArrayElements     func(env types.EnvPtr, arr types.Array, elems unsafe.Pointer, mode types.Jint)
	ReleaseLongArrayElements    func(env types.EnvPtr, arr types.Array, elems unsafe.Pointer, mode types.Jint)
	ReleaseFloatArrayElements   func(env types.EnvPtr, arr types.Array, elems unsafe.Pointer, mode types.Jint)
	ReleaseDoubleArrayElements  func(env types.EnvPtr, arr types.Array, elems unsafe.Pointer, mode types.Jint)
	GetBooleanArrayRegion       func(env types.EnvPtr, arr types.Array, start, n types.Jsize, buf unsafe.Pointer)
	GetByteArrayRegion          func(env types.EnvPtr, arr types.Array, start, n types.Jsize, buf unsafe.Pointer)
	GetCharArrayRegion          func(env types.EnvPtr, arr types.Array, start, n types.Jsize, buf unsafe.Pointer)
	GetShortArrayRegion         func(env types.EnvPtr, arr types.Array, start, n types.Jsize, buf unsafe.Pointer)
	GetIntArrayRegion           func(env types.EnvPtr, arr types.Array, start, n types.Jsize, buf unsafe.Pointer)
	GetLongArrayRegion          func(env types.EnvPtr, arr types.Array, start, n types.Jsize, buf unsafe.Pointer)
	GetFloatArrayRegion         func(env types.EnvPtr, arr types.Array, start, n types.Jsize, buf unsafe.Pointer)
	GetDoubleArrayRegion        func(env types.EnvPtr, arr types.Array, start, n types.Jsize, buf unsafe.Pointer)
	SetBooleanArrayRegion       func(env types.EnvPtr, arr types.Array, start, n types.Jsize, buf unsafe.Pointer)
	SetByteArrayRegion          func(env types.EnvPtr, arr types.Array, start, n types.Jsize, buf unsafe.Pointer)
	SetCharArrayRegion          func(env types.EnvPtr, arr types.Array, start, n types.Jsize, buf unsafe.Pointer)
	SetShortArrayRegion         func(env types.EnvPtr, arr types.Array, start, n types.Jsize, buf unsafe.Pointer)
	SetIntArrayRegion           func(env types.EnvPtr, arr types.Array, start, n types.Jsize, buf unsafe.Pointer)
	SetLongArrayRegion          func(env types.EnvPtr, arr types.Array, start, n types.Jsize, buf unsafe.Pointer)
	SetFloatArrayRegion         func(env types.EnvPtr, arr types.Array, start, n types.Jsize, buf unsafe.Pointer)
	SetDoubleArrayRegion        func(env types.EnvPtr, arr types.Array, start, n types.Jsize, buf unsafe.Pointer)

	// Natives and monitors
	RegisterNatives   func(env types.EnvPtr, cls types.Class, methods *NativeMethod, n types.Jint) types.Jint
	UnregisterNatives func(env types.EnvPtr, cls types.Class) types.Jint
	MonitorEnter      func(env types.EnvPtr, obj types.Object) types.Jint
	MonitorExit       func(env types.EnvPtr, obj types.Object) types.Jint
	GetJavaVM         func(env types.EnvPtr, vm *types.VMPtr) types.Jint

	// JNI 1.2
	GetStringRegion               func(env types.EnvPtr, s types.String, start, n types.Jsize, buf unsafe.Pointer)
	GetStringUTFRegion            func(env types.EnvPtr, s types.String, start, n types.Jsize, buf unsafe.Pointer)
	GetPrimitiveArrayCritical     func(env types.EnvPtr, arr types.Array, isCopy *types.Jboolean) unsafe.Pointer
	ReleasePrimitiveArrayCritical func(env types.EnvPtr, arr types.Array, carray unsafe.Pointer, mode types.Jint)
	GetStringCritical             func(env types.EnvPtr, s types.String, isCopy *types.Jboolean) unsafe.Pointer
	ReleaseStringCritical         func(env types.EnvPtr, s types.String, carray unsafe.Pointer)
	NewWeakGlobalRef              func(env types.EnvPtr, obj types.Object) types.Weak
	DeleteWeakGlobalRef           func(env types.EnvPtr, ref types.Weak)
	ExceptionCheck                func(env types.EnvPtr) types.Jboolean

	// JNI 1.4
	NewDirectByteBuffer     func(env types.EnvPtr, addr unsafe.Pointer, capacity types.Jlong) types.Object
	GetDirectBufferAddress  func(env types.EnvPtr, buf types.Object) unsafe.Pointer
	GetDirectBufferCapacity func(env types.EnvPtr, buf types.Object) types.Jlong

	// JNI 1.6
	GetObjectRefType func(env types.EnvPtr, obj types.Object) types.RefType

	// JNI 9
	GetModule func(env types.EnvPtr, cls types.Class) types.Object `since:"0x00090000"`

	// JNI 21
	IsVirtualThread func(env types.EnvPtr, obj types.Object) types.Jboolean `since:"0x00150000"`
}
