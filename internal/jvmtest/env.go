package jvmtest

import (
	"unicode/utf16"
	"unsafe"

	"github.com/wippyai/jni-runtime/native"
	"github.com/wippyai/jni-runtime/types"
)

// MaxLocalCapacity is the largest local frame the VM grants.
const MaxLocalCapacity = 1 << 16

func (j *JVM) envTable() *native.EnvFuncs {
	fn := &native.EnvFuncs{}

	fn.GetVersion = func(env types.EnvPtr) types.Jint {
		j.enter(env, "GetVersion")
		return types.Jint(j.version)
	}

	fn.DefineClass = func(env types.EnvPtr, name string, _ types.Object, _ unsafe.Pointer, n types.Jsize) types.Class {
		j.enter(env, "DefineClass")
		if n == 0 {
			j.throwNew(env, "java/lang/ClassFormatError", name)
			return types.Null
		}
		c := j.DefineClass(name, "java/lang/Object")
		return j.NewLocal(env, c.object)
	}
	fn.FindClass = func(env types.EnvPtr, name string) types.Class {
		j.enter(env, "FindClass")
		obj := j.ClassObject(name)
		if obj == nil {
			j.throwNew(env, "java/lang/NoClassDefFoundError", name)
			return types.Null
		}
		return j.NewLocal(env, obj)
	}
	fn.GetSuperclass = func(env types.EnvPtr, cls types.Class) types.Class {
		j.enter(env, "GetSuperclass")
		c := j.classOf(cls)
		if c == nil || c.Super == nil {
			return types.Null
		}
		return j.NewLocal(env, c.Super.object)
	}
	fn.IsAssignableFrom = func(env types.EnvPtr, sub, sup types.Class) types.Jboolean {
		j.enter(env, "IsAssignableFrom")
		a, b := j.classOf(sub), j.classOf(sup)
		return types.Bool(a != nil && a.IsSubclassOf(b))
	}

	fn.Throw = func(env types.EnvPtr, obj types.Throwable) types.Jint {
		j.enter(env, "Throw")
		if rc, ok := j.failed(env, "Throw"); ok {
			return rc
		}
		o := j.Deref(obj)
		if o == nil {
			return types.Jint(types.ERR)
		}
		j.mu.Lock()
		j.throwLocked(env, o)
		j.mu.Unlock()
		return 0
	}
	fn.ThrowNew = func(env types.EnvPtr, cls types.Class, msg string) types.Jint {
		j.enter(env, "ThrowNew")
		if rc, ok := j.failed(env, "ThrowNew"); ok {
			return rc
		}
		c := j.classOf(cls)
		if c == nil {
			return types.Jint(types.ERR)
		}
		j.throwNew(env, c.Name, msg)
		return 0
	}
	fn.ExceptionOccurred = func(env types.EnvPtr) types.Throwable {
		j.enter(env, "ExceptionOccurred")
		j.mu.Lock()
		defer j.mu.Unlock()
		t := j.threads[env]
		if t == nil || t.pending.IsNull() {
			return types.Null
		}
		return j.newRefLocked(env, j.handles[t.pending].obj, types.LocalRefType)
	}
	fn.ExceptionDescribe = func(env types.EnvPtr) {
		j.enter(env, "ExceptionDescribe")
		j.mu.Lock()
		defer j.mu.Unlock()
		if t := j.threads[env]; t != nil && !t.pending.IsNull() {
			j.described = append(j.described, j.handles[t.pending].obj.Class.Name)
			t.pending = types.Null
		}
	}
	fn.ExceptionClear = func(env types.EnvPtr) {
		j.enter(env, "ExceptionClear")
		j.mu.Lock()
		defer j.mu.Unlock()
		if t := j.threads[env]; t != nil {
			t.pending = types.Null
		}
	}
	fn.ExceptionCheck = func(env types.EnvPtr) types.Jboolean {
		j.enter(env, "ExceptionCheck")
		j.mu.Lock()
		defer j.mu.Unlock()
		return types.Bool(j.pendingLocked(env))
	}
	fn.FatalError = func(env types.EnvPtr, msg string) {
		j.enter(env, "FatalError")
		panic("jvmtest: fatal error: " + msg)
	}

	frame := func(slot string) func(types.EnvPtr, types.Jint) types.Jint {
		return func(env types.EnvPtr, capacity types.Jint) types.Jint {
			j.enter(env, slot)
			if rc, ok := j.failed(env, slot); ok {
				return rc
			}
			if capacity > MaxLocalCapacity {
				j.throwNew(env, "java/lang/OutOfMemoryError", "local capacity")
				return types.Jint(types.ENOMEM)
			}
			if slot == "PushLocalFrame" {
				j.mu.Lock()
				if t := j.threads[env]; t != nil {
					t.frames = append(t.frames, nil)
				}
				j.mu.Unlock()
			}
			return 0
		}
	}
	fn.PushLocalFrame = frame("PushLocalFrame")
	fn.EnsureLocalCapacity = frame("EnsureLocalCapacity")
	fn.PopLocalFrame = func(env types.EnvPtr, keep types.Object) types.Object {
		j.enter(env, "PopLocalFrame")
		j.mu.Lock()
		defer j.mu.Unlock()
		kept := j.derefLocked(keep)
		if t := j.threads[env]; t != nil && len(t.frames) > 0 {
			top := len(t.frames) - 1
			for _, h := range t.frames[top] {
				j.handles[h].live = false
			}
			t.frames = t.frames[:top]
		}
		return j.newRefLocked(env, kept, types.LocalRefType)
	}

	fn.NewGlobalRef = func(env types.EnvPtr, obj types.Object) types.Object {
		j.enter(env, "NewGlobalRef")
		if _, ok := j.failed(env, "NewGlobalRef"); ok {
			return types.Null
		}
		j.mu.Lock()
		defer j.mu.Unlock()
		return j.newRefLocked(env, j.derefLocked(obj), types.GlobalRefType)
	}
	fn.NewLocalRef = func(env types.EnvPtr, obj types.Object) types.Object {
		j.enter(env, "NewLocalRef")
		j.mu.Lock()
		defer j.mu.Unlock()
		return j.newRefLocked(env, j.derefLocked(obj), types.LocalRefType)
	}
	fn.NewWeakGlobalRef = func(env types.EnvPtr, obj types.Object) types.Weak {
		j.enter(env, "NewWeakGlobalRef")
		j.mu.Lock()
		defer j.mu.Unlock()
		return j.newRefLocked(env, j.derefLocked(obj), types.WeakGlobalRefType)
	}
	deleter := func(slot string, class types.RefType) func(types.EnvPtr, types.Object) {
		return func(env types.EnvPtr, obj types.Object) {
			j.enter(env, slot)
			j.mu.Lock()
			defer j.mu.Unlock()
			j.deleteRef(obj, class)
		}
	}
	fn.DeleteGlobalRef = deleter("DeleteGlobalRef", types.GlobalRefType)
	fn.DeleteLocalRef = deleter("DeleteLocalRef", types.LocalRefType)
	fn.DeleteWeakGlobalRef = deleter("DeleteWeakGlobalRef", types.WeakGlobalRefType)
	fn.IsSameObject = func(env types.EnvPtr, a, b types.Object) types.Jboolean {
		j.enter(env, "IsSameObject")
		return types.Bool(j.Deref(a) == j.Deref(b))
	}
	fn.GetObjectRefType = func(env types.EnvPtr, obj types.Object) types.RefType {
		j.enter(env, "GetObjectRefType")
		j.mu.Lock()
		defer j.mu.Unlock()
		if r := j.handles[obj]; r != nil && r.live {
			return r.class
		}
		return types.InvalidRefType
	}

	fn.AllocObject = func(env types.EnvPtr, cls types.Class) types.Object {
		j.enter(env, "AllocObject")
		c := j.classOf(cls)
		if c == nil {
			j.throwNew(env, "java/lang/NullPointerException", "class")
			return types.Null
		}
		return j.NewLocal(env, &Object{Class: c})
	}
	fn.NewObjectA = func(env types.EnvPtr, cls types.Class, mid types.MethodID, args *types.Value) types.Object {
		c := j.classOf(cls)
		if c == nil {
			j.enter(env, "NewObjectA")
			j.throwNew(env, "java/lang/NullPointerException", "class")
			return types.Null
		}
		obj := j.NewLocal(env, &Object{Class: c})
		j.invoke(env, "NewObjectA", obj, mid, args, nonvirtual)
		if j.Pending(env) != nil {
			return types.Null
		}
		return obj
	}
	fn.GetObjectClass = func(env types.EnvPtr, obj types.Object) types.Class {
		j.enter(env, "GetObjectClass")
		o := j.Deref(obj)
		if o == nil || o.Class == nil {
			return types.Null
		}
		return j.NewLocal(env, o.Class.object)
	}
	fn.IsInstanceOf = func(env types.EnvPtr, obj types.Object, cls types.Class) types.Jboolean {
		j.enter(env, "IsInstanceOf")
		o := j.Deref(obj)
		if o == nil {
			return types.True
		}
		return types.Bool(o.Class.IsSubclassOf(j.classOf(cls)))
	}
	resolve := func(slot string, static bool) func(types.EnvPtr, types.Class, string, string) types.MethodID {
		return func(env types.EnvPtr, cls types.Class, name, sig string) types.MethodID {
			j.enter(env, slot+":"+name)
			c := j.classOf(cls)
			if c == nil {
				j.throwNew(env, "java/lang/NullPointerException", "class")
				return 0
			}
			j.mu.Lock()
			m := c.Lookup(name, sig, static)
			j.mu.Unlock()
			if m == nil {
				j.throwNew(env, "java/lang/NoSuchMethodError", name)
				return 0
			}
			return m.id
		}
	}
	fn.GetMethodID = resolve("GetMethodID", false)
	fn.GetStaticMethodID = resolve("GetStaticMethodID", true)

	j.bindCalls(fn)

	fn.NewString = func(env types.EnvPtr, chars unsafe.Pointer, n types.Jsize) types.String {
		j.enter(env, "NewString")
		var units []uint16
		if n > 0 {
			units = unsafe.Slice((*uint16)(chars), n)
		}
		return j.NewLocal(env, j.NewObject("java/lang/String", string(utf16.Decode(units))))
	}
	fn.NewStringUTF = func(env types.EnvPtr, utf string) types.String {
		j.enter(env, "NewStringUTF")
		return j.NewLocal(env, j.NewObject("java/lang/String", utf))
	}
	fn.GetStringLength = func(env types.EnvPtr, s types.String) types.Jsize {
		j.enter(env, "GetStringLength")
		o := j.Deref(s)
		if o == nil {
			j.throwNew(env, "java/lang/NullPointerException", "string")
			return 0
		}
		return types.Jsize(len(utf16.Encode([]rune(o.Text))))
	}
	fn.GetStringRegion = func(env types.EnvPtr, s types.String, start, n types.Jsize, buf unsafe.Pointer) {
		j.enter(env, "GetStringRegion")
		o := j.Deref(s)
		if o == nil {
			j.throwNew(env, "java/lang/NullPointerException", "string")
			return
		}
		units := utf16.Encode([]rune(o.Text))
		if start < 0 || n < 0 || int(start+n) > len(units) {
			j.throwNew(env, "java/lang/StringIndexOutOfBoundsException", o.Text)
			return
		}
		copy(unsafe.Slice((*uint16)(buf), n), units[start:start+n])
	}
	fn.GetStringUTFLength = func(env types.EnvPtr, s types.String) types.Jsize {
		j.enter(env, "GetStringUTFLength")
		o := j.Deref(s)
		if o == nil {
			j.throwNew(env, "java/lang/NullPointerException", "string")
			return 0
		}
		return types.Jsize(len(o.Text))
	}
	fn.GetStringUTFChars = func(env types.EnvPtr, s types.String, isCopy *types.Jboolean) unsafe.Pointer {
		j.enter(env, "GetStringUTFChars")
		o := j.Deref(s)
		if o == nil {
			j.throwNew(env, "java/lang/NullPointerException", "string")
			return nil
		}
		buf := append([]byte(o.Text), 0)
		if isCopy != nil {
			*isCopy = types.True
		}
		return j.pin(buf)
	}
	fn.ReleaseStringUTFChars = func(env types.EnvPtr, _ types.String, chars unsafe.Pointer) {
		j.enter(env, "ReleaseStringUTFChars")
		j.unpin(chars)
	}

	fn.GetArrayLength = func(env types.EnvPtr, arr types.Array) types.Jsize {
		j.enter(env, "GetArrayLength")
		o := j.Deref(arr)
		if o == nil {
			j.throwNew(env, "java/lang/NullPointerException", "array")
			return 0
		}
		return types.Jsize(len(o.Ints))
	}
	fn.NewIntArray = func(env types.EnvPtr, n types.Jsize) types.Array {
		j.enter(env, "NewIntArray")
		if n < 0 {
			j.throwNew(env, "java/lang/NegativeArraySizeException", "")
			return types.Null
		}
		return j.NewLocal(env, &Object{Ints: make([]types.Jint, n)})
	}
	intRegion := func(slot string, set bool) func(types.EnvPtr, types.Array, types.Jsize, types.Jsize, unsafe.Pointer) {
		return func(env types.EnvPtr, arr types.Array, start, n types.Jsize, buf unsafe.Pointer) {
			j.enter(env, slot)
			o := j.Deref(arr)
			if o == nil {
				j.throwNew(env, "java/lang/NullPointerException", "array")
				return
			}
			if start < 0 || n < 0 || int(start+n) > len(o.Ints) {
				j.throwNew(env, "java/lang/ArrayIndexOutOfBoundsException", "")
				return
			}
			view := unsafe.Slice((*types.Jint)(buf), n)
			if set {
				copy(o.Ints[start:], view)
			} else {
				copy(view, o.Ints[start:start+n])
			}
		}
	}
	fn.GetIntArrayRegion = intRegion("GetIntArrayRegion", false)
	fn.SetIntArrayRegion = intRegion("SetIntArrayRegion", true)
	fn.GetIntArrayElements = func(env types.EnvPtr, arr types.Array, isCopy *types.Jboolean) unsafe.Pointer {
		j.enter(env, "GetIntArrayElements")
		o := j.Deref(arr)
		if o == nil {
			j.throwNew(env, "java/lang/NullPointerException", "array")
			return nil
		}
		if isCopy != nil {
			*isCopy = types.True
		}
		buf := append(make([]types.Jint, 0, len(o.Ints)+1), o.Ints...)
		return j.pin(buf[:cap(buf)])
	}
	fn.ReleaseIntArrayElements = func(env types.EnvPtr, arr types.Array, elems unsafe.Pointer, mode types.Jint) {
		j.enter(env, "ReleaseIntArrayElements")
		o := j.Deref(arr)
		if o != nil && mode != types.Abort {
			copy(o.Ints, unsafe.Slice((*types.Jint)(elems), len(o.Ints)))
		}
		if mode != types.Commit {
			j.unpin(elems)
		}
	}

	fn.RegisterNatives = func(env types.EnvPtr, cls types.Class, methods *native.NativeMethod, n types.Jint) types.Jint {
		j.enter(env, "RegisterNatives")
		if rc, ok := j.failed(env, "RegisterNatives"); ok {
			return rc
		}
		c := j.classOf(cls)
		if c == nil || n <= 0 {
			return types.Jint(types.EINVAL)
		}
		list := unsafe.Slice(methods, n)
		j.mu.Lock()
		defer j.mu.Unlock()
		for _, nm := range list {
			name, sig := CString(nm.Name), CString(nm.Signature)
			m := c.Lookup(name, sig, false)
			if m == nil {
				m = c.Lookup(name, sig, true)
			}
			if m == nil {
				j.throwLocked(env, j.newObjectLocked("java/lang/NoSuchMethodError", name))
				return types.Jint(types.ERR)
			}
			m.FnPtr = nm.FnPtr
			j.natives[c.Name] = append(j.natives[c.Name], Native{Name: name, Signature: sig, FnPtr: nm.FnPtr})
		}
		return 0
	}
	fn.UnregisterNatives = func(env types.EnvPtr, cls types.Class) types.Jint {
		j.enter(env, "UnregisterNatives")
		if rc, ok := j.failed(env, "UnregisterNatives"); ok {
			return rc
		}
		c := j.classOf(cls)
		if c == nil {
			return types.Jint(types.EINVAL)
		}
		j.mu.Lock()
		defer j.mu.Unlock()
		delete(j.natives, c.Name)
		for _, m := range c.methods {
			m.FnPtr = 0
		}
		return 0
	}
	fn.MonitorEnter = func(env types.EnvPtr, obj types.Object) types.Jint {
		j.enter(env, "MonitorEnter")
		if rc, ok := j.failed(env, "MonitorEnter"); ok {
			return rc
		}
		o := j.Deref(obj)
		if o == nil {
			j.throwNew(env, "java/lang/NullPointerException", "monitor")
			return types.Jint(types.ERR)
		}
		j.mu.Lock()
		o.monitor++
		j.mu.Unlock()
		return 0
	}
	fn.MonitorExit = func(env types.EnvPtr, obj types.Object) types.Jint {
		j.enter(env, "MonitorExit")
		if rc, ok := j.failed(env, "MonitorExit"); ok {
			return rc
		}
		o := j.Deref(obj)
		j.mu.Lock()
		defer j.mu.Unlock()
		if o == nil || o.monitor == 0 {
			j.throwLocked(env, j.newObjectLocked("java/lang/IllegalMonitorStateException", "not owner"))
			return types.Jint(types.ERR)
		}
		o.monitor--
		return 0
	}
	fn.GetJavaVM = func(env types.EnvPtr, vm *types.VMPtr) types.Jint {
		j.enter(env, "GetJavaVM")
		if rc, ok := j.failed(env, "GetJavaVM"); ok {
			return rc
		}
		*vm = j.vm
		return 0
	}

	if j.version.AtLeast(types.Version9) {
		fn.GetModule = func(env types.EnvPtr, cls types.Class) types.Object {
			j.enter(env, "GetModule")
			return types.Null
		}
	}
	if j.version.AtLeast(types.Version21) {
		fn.IsVirtualThread = func(env types.EnvPtr, obj types.Object) types.Jboolean {
			j.enter(env, "IsVirtualThread")
			return types.False
		}
	}
	return fn
}

// classOf returns the class behind a Class reference.
func (j *JVM) classOf(cls types.Class) *Class {
	if o := j.Deref(cls); o != nil {
		return o.of
	}
	return nil
}

// Monitor returns the monitor entry count of the object behind h.
func (j *JVM) Monitor(h types.Object) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	if o := j.derefLocked(h); o != nil {
		return o.monitor
	}
	return -1
}

// Pinned counts buffers handed out and not yet released.
func (j *JVM) Pinned() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.pinned)
}

func (j *JVM) pin(buf any) unsafe.Pointer {
	var p unsafe.Pointer
	switch b := buf.(type) {
	case []byte:
		p = unsafe.Pointer(unsafe.SliceData(b))
	case []types.Jint:
		p = unsafe.Pointer(unsafe.SliceData(b))
	}
	j.mu.Lock()
	j.pinned[p] = buf
	j.mu.Unlock()
	return p
}

func (j *JVM) unpin(p unsafe.Pointer) {
	j.mu.Lock()
	delete(j.pinned, p)
	j.mu.Unlock()
}
