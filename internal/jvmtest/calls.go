package jvmtest

import (
	"unsafe"

	"github.com/wippyai/jni-runtime/native"
	"github.com/wippyai/jni-runtime/types"
)

type dispatch int

const (
	virtual dispatch = iota
	nonvirtual
	static
)

// invoke runs the body of mid. Virtual calls dispatch on the receiver's class.
func (j *JVM) invoke(env types.EnvPtr, slot string, target types.Object, mid types.MethodID, args *types.Value, mode dispatch) types.Value {
	j.enter(env, slot)

	j.mu.Lock()
	m := j.methods[mid]
	var this *Object
	if mode != static {
		this = j.derefLocked(target)
	}
	if m != nil && mode == virtual && this != nil && this.Class != nil {
		if o := this.Class.Lookup(m.Name, m.Signature, false); o != nil {
			m = o
		}
	}
	j.mu.Unlock()

	switch {
	case m == nil:
		j.throwNew(env, "java/lang/NoSuchMethodError", "unknown method id")
		return 0
	case mode != static && this == nil:
		j.throwNew(env, "java/lang/NullPointerException", m.Name)
		return 0
	}

	var in []types.Value
	if n := len(m.plan.Args); n > 0 && args != nil {
		in = append(in, unsafe.Slice(args, n)...)
	}
	if m.Impl != nil {
		return m.Impl(&Call{JVM: j, Env: env, Method: m, This: this, Args: in})
	}

	j.mu.Lock()
	f := j.linked[m.FnPtr]
	bound := m.FnPtr != 0
	j.mu.Unlock()
	if !bound || f == nil {
		j.throwNew(env, "java/lang/UnsatisfiedLinkError", m.Name)
		return 0
	}
	recv := this
	if mode == static {
		recv = m.class.object
	}
	ref := j.NewLocal(env, recv)
	defer j.dropLocal(ref)
	return f(env, ref, in)
}

// dropLocal frees a local the VM created for a native frame.
func (j *JVM) dropLocal(h types.Object) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if r := j.handles[h]; r != nil {
		r.live = false
	}
}

// NativeFunc is the Go side of a registered native method.
type NativeFunc func(env types.EnvPtr, this types.Object, args []types.Value) types.Value

// Link makes calls to a method registered with fnPtr run f.
func (j *JVM) Link(fnPtr uintptr, f NativeFunc) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.linked[fnPtr] = f
}

func (j *JVM) bindCalls(fn *native.EnvFuncs) {
	fn.CallObjectMethodA = func(env types.EnvPtr, obj types.Object, mid types.MethodID, args *types.Value) types.Object {
		v := j.invoke(env, "CallObjectMethodA", obj, mid, args, virtual)
		return v.Object()
	}
	fn.CallBooleanMethodA = func(env types.EnvPtr, obj types.Object, mid types.MethodID, args *types.Value) types.Jboolean {
		v := j.invoke(env, "CallBooleanMethodA", obj, mid, args, virtual)
		return types.Bool(v.Bool())
	}
	fn.CallByteMethodA = func(env types.EnvPtr, obj types.Object, mid types.MethodID, args *types.Value) types.Jbyte {
		v := j.invoke(env, "CallByteMethodA", obj, mid, args, virtual)
		return v.Byte()
	}
	fn.CallCharMethodA = func(env types.EnvPtr, obj types.Object, mid types.MethodID, args *types.Value) types.Jchar {
		v := j.invoke(env, "CallCharMethodA", obj, mid, args, virtual)
		return v.Char()
	}
	fn.CallShortMethodA = func(env types.EnvPtr, obj types.Object, mid types.MethodID, args *types.Value) types.Jshort {
		v := j.invoke(env, "CallShortMethodA", obj, mid, args, virtual)
		return v.Short()
	}
	fn.CallIntMethodA = func(env types.EnvPtr, obj types.Object, mid types.MethodID, args *types.Value) types.Jint {
		v := j.invoke(env, "CallIntMethodA", obj, mid, args, virtual)
		return v.Int()
	}
	fn.CallLongMethodA = func(env types.EnvPtr, obj types.Object, mid types.MethodID, args *types.Value) types.Jlong {
		v := j.invoke(env, "CallLongMethodA", obj, mid, args, virtual)
		return v.Long()
	}
	fn.CallFloatMethodA = func(env types.EnvPtr, obj types.Object, mid types.MethodID, args *types.Value) types.Jfloat {
		v := j.invoke(env, "CallFloatMethodA", obj, mid, args, virtual)
		return v.Float()
	}
	fn.CallDoubleMethodA = func(env types.EnvPtr, obj types.Object, mid types.MethodID, args *types.Value) types.Jdouble {
		v := j.invoke(env, "CallDoubleMethodA", obj, mid, args, virtual)
		return v.Double()
	}
	fn.CallVoidMethodA = func(env types.EnvPtr, obj types.Object, mid types.MethodID, args *types.Value) {
		j.invoke(env, "CallVoidMethodA", obj, mid, args, virtual)
	}

	fn.CallNonvirtualObjectMethodA = func(env types.EnvPtr, obj types.Object, _ types.Class, mid types.MethodID, args *types.Value) types.Object {
		v := j.invoke(env, "CallNonvirtualObjectMethodA", obj, mid, args, nonvirtual)
		return v.Object()
	}
	fn.CallNonvirtualBooleanMethodA = func(env types.EnvPtr, obj types.Object, _ types.Class, mid types.MethodID, args *types.Value) types.Jboolean {
		v := j.invoke(env, "CallNonvirtualBooleanMethodA", obj, mid, args, nonvirtual)
		return types.Bool(v.Bool())
	}
	fn.CallNonvirtualByteMethodA = func(env types.EnvPtr, obj types.Object, _ types.Class, mid types.MethodID, args *types.Value) types.Jbyte {
		v := j.invoke(env, "CallNonvirtualByteMethodA", obj, mid, args, nonvirtual)
		return v.Byte()
	}
	fn.CallNonvirtualCharMethodA = func(env types.EnvPtr, obj types.Object, _ types.Class, mid types.MethodID, args *types.Value) types.Jchar {
		v := j.invoke(env, "CallNonvirtualCharMethodA", obj, mid, args, nonvirtual)
		return v.Char()
	}
	fn.CallNonvirtualShortMethodA = func(env types.EnvPtr, obj types.Object, _ types.Class, mid types.MethodID, args *types.Value) types.Jshort {
		v := j.invoke(env, "CallNonvirtualShortMethodA", obj, mid, args, nonvirtual)
		return v.Short()
	}
	fn.CallNonvirtualIntMethodA = func(env types.EnvPtr, obj types.Object, _ types.Class, mid types.MethodID, args *types.Value) types.Jint {
		v := j.invoke(env, "CallNonvirtualIntMethodA", obj, mid, args, nonvirtual)
		return v.Int()
	}
	fn.CallNonvirtualLongMethodA = func(env types.EnvPtr, obj types.Object, _ types.Class, mid types.MethodID, args *types.Value) types.Jlong {
		v := j.invoke(env, "CallNonvirtualLongMethodA", obj, mid, args, nonvirtual)
		return v.Long()
	}
	fn.CallNonvirtualFloatMethodA = func(env types.EnvPtr, obj types.Object, _ types.Class, mid types.MethodID, args *types.Value) types.Jfloat {
		v := j.invoke(env, "CallNonvirtualFloatMethodA", obj, mid, args, nonvirtual)
		return v.Float()
	}
	fn.CallNonvirtualDoubleMethodA = func(env types.EnvPtr, obj types.Object, _ types.Class, mid types.MethodID, args *types.Value) types.Jdouble {
		v := j.invoke(env, "CallNonvirtualDoubleMethodA", obj, mid, args, nonvirtual)
		return v.Double()
	}
	fn.CallNonvirtualVoidMethodA = func(env types.EnvPtr, obj types.Object, _ types.Class, mid types.MethodID, args *types.Value) {
		j.invoke(env, "CallNonvirtualVoidMethodA", obj, mid, args, nonvirtual)
	}

	fn.CallStaticObjectMethodA = func(env types.EnvPtr, _ types.Class, mid types.MethodID, args *types.Value) types.Object {
		v := j.invoke(env, "CallStaticObjectMethodA", types.Null, mid, args, static)
		return v.Object()
	}
	fn.CallStaticBooleanMethodA = func(env types.EnvPtr, _ types.Class, mid types.MethodID, args *types.Value) types.Jboolean {
		v := j.invoke(env, "CallStaticBooleanMethodA", types.Null, mid, args, static)
		return types.Bool(v.Bool())
	}
	fn.CallStaticByteMethodA = func(env types.EnvPtr, _ types.Class, mid types.MethodID, args *types.Value) types.Jbyte {
		v := j.invoke(env, "CallStaticByteMethodA", types.Null, mid, args, static)
		return v.Byte()
	}
	fn.CallStaticCharMethodA = func(env types.EnvPtr, _ types.Class, mid types.MethodID, args *types.Value) types.Jchar {
		v := j.invoke(env, "CallStaticCharMethodA", types.Null, mid, args, static)
		return v.Char()
	}
	fn.CallStaticShortMethodA = func(env types.EnvPtr, _ types.Class, mid types.MethodID, args *types.Value) types.Jshort {
		v := j.invoke(env, "CallStaticShortMethodA", types.Null, mid, args, static)
		return v.Short()
	}
	fn.CallStaticIntMethodA = func(env types.EnvPtr, _ types.Class, mid types.MethodID, args *types.Value) types.Jint {
		v := j.invoke(env, "CallStaticIntMethodA", types.Null, mid, args, static)
		return v.Int()
	}
	fn.CallStaticLongMethodA = func(env types.EnvPtr, _ types.Class, mid types.MethodID, args *types.Value) types.Jlong {
		v := j.invoke(env, "CallStaticLongMethodA", types.Null, mid, args, static)
		return v.Long()
	}
	fn.CallStaticFloatMethodA = func(env types.EnvPtr, _ types.Class, mid types.MethodID, args *types.Value) types.Jfloat {
		v := j.invoke(env, "CallStaticFloatMethodA", types.Null, mid, args, static)
		return v.Float()
	}
	fn.CallStaticDoubleMethodA = func(env types.EnvPtr, _ types.Class, mid types.MethodID, args *types.Value) types.Jdouble {
		v := j.invoke(env, "CallStaticDoubleMethodA", types.Null, mid, args, static)
		return v.Double()
	}
	fn.CallStaticVoidMethodA = func(env types.EnvPtr, _ types.Class, mid types.MethodID, args *types.Value) {
		j.invoke(env, "CallStaticVoidMethodA", types.Null, mid, args, static)
	}
}
