package env

import "github.com/wippyai/jni-runtime/types"

// The Call families take jvalue arguments matching the method signature and
// dispatch through the A slot of the table. An empty args list calls a
// method without parameters.

func (e *Env) CallObjectMethod(obj types.Object, mid types.MethodID, args ...types.Value) (types.Object, error) {
	return e.local("CallObjectMethod", e.fn.CallObjectMethodA(e.ptr, obj, mid, types.Values(args)))
}

func (e *Env) CallBooleanMethod(obj types.Object, mid types.MethodID, args ...types.Value) (bool, error) {
	v, err := result(e, "CallBooleanMethod", e.fn.CallBooleanMethodA(e.ptr, obj, mid, types.Values(args)))
	return types.IsTrue(v), err
}

func (e *Env) CallByteMethod(obj types.Object, mid types.MethodID, args ...types.Value) (types.Jbyte, error) {
	return result(e, "CallByteMethod", e.fn.CallByteMethodA(e.ptr, obj, mid, types.Values(args)))
}

func (e *Env) CallCharMethod(obj types.Object, mid types.MethodID, args ...types.Value) (types.Jchar, error) {
	return result(e, "CallCharMethod", e.fn.CallCharMethodA(e.ptr, obj, mid, types.Values(args)))
}

func (e *Env) CallShortMethod(obj types.Object, mid types.MethodID, args ...types.Value) (types.Jshort, error) {
	return result(e, "CallShortMethod", e.fn.CallShortMethodA(e.ptr, obj, mid, types.Values(args)))
}

func (e *Env) CallIntMethod(obj types.Object, mid types.MethodID, args ...types.Value) (types.Jint, error) {
	return result(e, "CallIntMethod", e.fn.CallIntMethodA(e.ptr, obj, mid, types.Values(args)))
}

func (e *Env) CallLongMethod(obj types.Object, mid types.MethodID, args ...types.Value) (types.Jlong, error) {
	return result(e, "CallLongMethod", e.fn.CallLongMethodA(e.ptr, obj, mid, types.Values(args)))
}

func (e *Env) CallFloatMethod(obj types.Object, mid types.MethodID, args ...types.Value) (types.Jfloat, error) {
	return result(e, "CallFloatMethod", e.fn.CallFloatMethodA(e.ptr, obj, mid, types.Values(args)))
}

func (e *Env) CallDoubleMethod(obj types.Object, mid types.MethodID, args ...types.Value) (types.Jdouble, error) {
	return result(e, "CallDoubleMethod", e.fn.CallDoubleMethodA(e.ptr, obj, mid, types.Values(args)))
}

func (e *Env) CallVoidMethod(obj types.Object, mid types.MethodID, args ...types.Value) error {
	e.fn.CallVoidMethodA(e.ptr, obj, mid, types.Values(args))
	return e.check("CallVoidMethod")
}

func (e *Env) CallNonvirtualObjectMethod(obj types.Object, cls types.Class, mid types.MethodID, args ...types.Value) (types.Object, error) {
	return e.local("CallNonvirtualObjectMethod", e.fn.CallNonvirtualObjectMethodA(e.ptr, obj, cls, mid, types.Values(args)))
}

func (e *Env) CallNonvirtualBooleanMethod(obj types.Object, cls types.Class, mid types.MethodID, args ...types.Value) (bool, error) {
	v, err := result(e, "CallNonvirtualBooleanMethod", e.fn.CallNonvirtualBooleanMethodA(e.ptr, obj, cls, mid, types.Values(args)))
	return types.IsTrue(v), err
}

func (e *Env) CallNonvirtualByteMethod(obj types.Object, cls types.Class, mid types.MethodID, args ...types.Value) (types.Jbyte, error) {
	return result(e, "CallNonvirtualByteMethod", e.fn.CallNonvirtualByteMethodA(e.ptr, obj, cls, mid, types.Values(args)))
}

func (e *Env) CallNonvirtualCharMethod(obj types.Object, cls types.Class, mid types.MethodID, args ...types.Value) (types.Jchar, error) {
	return result(e, "CallNonvirtualCharMethod", e.fn.CallNonvirtualCharMethodA(e.ptr, obj, cls, mid, types.Values(args)))
}

func (e *Env) CallNonvirtualShortMethod(obj types.Object, cls types.Class, mid types.MethodID, args ...types.Value) (types.Jshort, error) {
	return result(e, "CallNonvirtualShortMethod", e.fn.CallNonvirtualShortMethodA(e.ptr, obj, cls, mid, types.Values(args)))
}

func (e *Env) CallNonvirtualIntMethod(obj types.Object, cls types.Class, mid types.MethodID, args ...types.Value) (types.Jint, error) {
	return result(e, "CallNonvirtualIntMethod", e.fn.CallNonvirtualIntMethodA(e.ptr, obj, cls, mid, types.Values(args)))
}

func (e *Env) CallNonvirtualLongMethod(obj types.Object, cls types.Class, mid types.MethodID, args ...types.Value) (types.Jlong, error) {
	return result(e, "CallNonvirtualLongMethod", e.fn.CallNonvirtualLongMethodA(e.ptr, obj, cls, mid, types.Values(args)))
}

func (e *Env) CallNonvirtualFloatMethod(obj types.Object, cls types.Class, mid types.MethodID, args ...types.Value) (types.Jfloat, error) {
	return result(e, "CallNonvirtualFloatMethod", e.fn.CallNonvirtualFloatMethodA(e.ptr, obj, cls, mid, types.Values(args)))
}

func (e *Env) CallNonvirtualDoubleMethod(obj types.Object, cls types.Class, mid types.MethodID, args ...types.Value) (types.Jdouble, error) {
	return result(e, "CallNonvirtualDoubleMethod", e.fn.CallNonvirtualDoubleMethodA(e.ptr, obj, cls, mid, types.Values(args)))
}

func (e *Env) CallNonvirtualVoidMethod(obj types.Object, cls types.Class, mid types.MethodID, args ...types.Value) error {
	e.fn.CallNonvirtualVoidMethodA(e.ptr, obj, cls, mid, types.Values(args))
	return e.check("CallNonvirtualVoidMethod")
}

func (e *Env) CallStaticObjectMethod(cls types.Class, mid types.MethodID, args ...types.Value) (types.Object, error) {
	return e.local("CallStaticObjectMethod", e.fn.CallStaticObjectMethodA(e.ptr, cls, mid, types.Values(args)))
}

func (e *Env) CallStaticBooleanMethod(cls types.Class, mid types.MethodID, args ...types.Value) (bool, error) {
	v, err := result(e, "CallStaticBooleanMethod", e.fn.CallStaticBooleanMethodA(e.ptr, cls, mid, types.Values(args)))
	return types.IsTrue(v), err
}

func (e *Env) CallStaticByteMethod(cls types.Class, mid types.MethodID, args ...types.Value) (types.Jbyte, error) {
	return result(e, "CallStaticByteMethod", e.fn.CallStaticByteMethodA(e.ptr, cls, mid, types.Values(args)))
}

func (e *Env) CallStaticCharMethod(cls types.Class, mid types.MethodID, args ...types.Value) (types.Jchar, error) {
	return result(e, "CallStaticCharMethod", e.fn.CallStaticCharMethodA(e.ptr, cls, mid, types.Values(args)))
}

func (e *Env) CallStaticShortMethod(cls types.Class, mid types.MethodID, args ...types.Value) (types.Jshort, error) {
	return result(e, "CallStaticShortMethod", e.fn.CallStaticShortMethodA(e.ptr, cls, mid, types.Values(args)))
}

func (e *Env) CallStaticIntMethod(cls types.Class, mid types.MethodID, args ...types.Value) (types.Jint, error) {
	return result(e, "CallStaticIntMethod", e.fn.CallStaticIntMethodA(e.ptr, cls, mid, types.Values(args)))
}

func (e *Env) CallStaticLongMethod(cls types.Class, mid types.MethodID, args ...types.Value) (types.Jlong, error) {
	return result(e, "CallStaticLongMethod", e.fn.CallStaticLongMethodA(e.ptr, cls, mid, types.Values(args)))
}

func (e *Env) CallStaticFloatMethod(cls types.Class, mid types.MethodID, args ...types.Value) (types.Jfloat, error) {
	return result(e, "CallStaticFloatMethod", e.fn.CallStaticFloatMethodA(e.ptr, cls, mid, types.Values(args)))
}

func (e *Env) CallStaticDoubleMethod(cls types.Class, mid types.MethodID, args ...types.Value) (types.Jdouble, error) {
	return result(e, "CallStaticDoubleMethod", e.fn.CallStaticDoubleMethodA(e.ptr, cls, mid, types.Values(args)))
}

func (e *Env) CallStaticVoidMethod(cls types.Class, mid types.MethodID, args ...types.Value) error {
	e.fn.CallStaticVoidMethodA(e.ptr, cls, mid, types.Values(args))
	return e.check("CallStaticVoidMethod")
}
