// Package jvmtest provides an in-memory Java VM for tests.
//
// A JVM backs the JNI function tables with Go closures and implements
// native.Binder, so code under test runs against it through the same
// EnvFuncs, VMFuncs and LibFuncs it would bind from a real libjvm. The model
// covers what the runtime's tests exercise: classes with Go method bodies,
// pending exceptions per thread, reference tables with a deletion log, strings,
// int arrays, monitors, native registration and the invocation API.
package jvmtest

import (
	"strings"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/wippyai/jni-runtime/native"
	"github.com/wippyai/jni-runtime/signature"
	"github.com/wippyai/jni-runtime/types"
)

// Handles and pointers are unique across every JVM in the process, so Envs
// cached by pointer never alias between tests.
var counter atomic.Uintptr

func alloc() uintptr { return counter.Add(16) + 0x10000 }

// Impl is the Go body of a Java method.
type Impl func(c *Call) types.Value

// Object is a Java object.
type Object struct {
	Class   *Class
	Message string
	Text    string
	Ints    []types.Jint

	of      *Class
	monitor int
}

// Class is a Java class.
type Class struct {
	Name  string
	Super *Class

	jvm     *JVM
	object  *Object
	methods []*Method
}

// Method is a Java method.
type Method struct {
	Name      string
	Signature string
	Static    bool
	Impl      Impl
	FnPtr     uintptr

	class *Class
	plan  signature.Plan
	id    types.MethodID
}

// Deletion is an entry of the deletion log.
type Deletion struct {
	Handle types.Object
	Class  types.RefType
}

// Native is a registered native method.
type Native struct {
	Name      string
	Signature string
	FnPtr     uintptr
}

type handle struct {
	obj   *Object
	class types.RefType
	live  bool
}

type thread struct {
	name    string
	daemon  bool
	pending types.Object
	frames  [][]types.Object
}

type failure struct {
	rc    types.Jint
	throw string
}

// JVM is an in-memory Java VM.
type JVM struct {
	mu sync.Mutex

	version    types.Version
	vm         types.VMPtr
	created    bool
	nullCreate bool
	options    []string

	handles map[types.Object]*handle
	classes map[string]*Class
	methods map[types.MethodID]*Method
	threads map[types.EnvPtr]*thread
	current types.EnvPtr

	deleted    []Deletion
	doubleFree int
	calls      []string
	violations []string
	described  []string
	natives    map[string][]Native
	linked     map[uintptr]NativeFunc
	failures   map[string]failure
	pinned     map[unsafe.Pointer]any

	env *native.EnvFuncs
	vmf *native.VMFuncs
	lib *native.LibFuncs
}

// Option configures a JVM.
type Option func(*JVM)

// WithVersion sets the JNI version reported by the VM. Version-gated table
// slots are left unbound below their version.
func WithVersion(v types.Version) Option {
	return func(j *JVM) { j.version = v }
}

// New creates a JVM with the java.lang classes the runtime relies on.
func New(opts ...Option) *JVM {
	j := &JVM{
		version:  types.Version21,
		vm:       types.VMPtr(alloc()),
		handles:  make(map[types.Object]*handle),
		classes:  make(map[string]*Class),
		methods:  make(map[types.MethodID]*Method),
		threads:  make(map[types.EnvPtr]*thread),
		natives:  make(map[string][]Native),
		linked:   make(map[uintptr]NativeFunc),
		failures: make(map[string]failure),
		pinned:   make(map[unsafe.Pointer]any),
	}
	for _, opt := range opts {
		opt(j)
	}
	j.bootstrap()
	j.env = j.envTable()
	j.vmf = j.vmTable()
	j.lib = j.libTable()
	return j
}

func (j *JVM) bootstrap() {
	object := j.DefineClass("java/lang/Object", "")
	classClass := j.DefineClass("java/lang/Class", "java/lang/Object")
	for _, c := range j.classes {
		c.object.Class = classClass
	}

	object.Method("notify", "()V", func(*Call) types.Value { return 0 })
	object.Method("hashCode", "()I", func(c *Call) types.Value {
		return types.IntValue(types.Jint(uintptr(unsafe.Pointer(c.This)) >> 4))
	})
	classClass.Method("getName", "()Ljava/lang/String;", func(c *Call) types.Value {
		return c.NewString(strings.ReplaceAll(c.This.of.Name, "/", "."))
	})

	j.DefineClass("java/lang/String", "java/lang/Object")
	j.DefineClass("java/lang/Thread", "java/lang/Object")
	throwable := j.DefineClass("java/lang/Throwable", "java/lang/Object")
	throwable.Method("getMessage", "()Ljava/lang/String;", func(c *Call) types.Value {
		if c.This.Message == "" {
			return types.ObjectValue(types.Null)
		}
		return c.NewString(c.This.Message)
	})

	for _, pair := range [][2]string{
		{"java/lang/Exception", "java/lang/Throwable"},
		{"java/lang/Error", "java/lang/Throwable"},
		{"java/lang/RuntimeException", "java/lang/Exception"},
		{"java/lang/IllegalArgumentException", "java/lang/RuntimeException"},
		{"java/lang/IllegalStateException", "java/lang/RuntimeException"},
		{"java/lang/IllegalMonitorStateException", "java/lang/RuntimeException"},
		{"java/lang/ArithmeticException", "java/lang/RuntimeException"},
		{"java/lang/NegativeArraySizeException", "java/lang/RuntimeException"},
		{"java/lang/ArrayIndexOutOfBoundsException", "java/lang/RuntimeException"},
		{"java/lang/StringIndexOutOfBoundsException", "java/lang/RuntimeException"},
		{"java/lang/NoClassDefFoundError", "java/lang/Error"},
		{"java/lang/NoSuchMethodError", "java/lang/Error"},
		{"java/lang/ClassFormatError", "java/lang/Error"},
		{"java/lang/OutOfMemoryError", "java/lang/Error"},
		{"java/lang/UnsatisfiedLinkError", "java/lang/Error"},
		{"java/lang/NullPointerException", "java/lang/RuntimeException"},
	} {
		j.DefineClass(pair[0], pair[1])
	}
}

// DefineClass creates or returns the class name with superclass super.
func (j *JVM) DefineClass(name, super string) *Class {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.defineLocked(name, super)
}

func (j *JVM) defineLocked(name, super string) *Class {
	if c, ok := j.classes[name]; ok {
		return c
	}
	c := &Class{Name: name, jvm: j, Super: j.classes[super]}
	c.object = &Object{Class: j.classes["java/lang/Class"], of: c}
	j.classes[name] = c
	return c
}

// Class returns the class name, or nil.
func (j *JVM) Class(name string) *Class {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.classes[name]
}

// Method adds an instance method and returns c.
func (c *Class) Method(name, sig string, impl Impl) *Class {
	c.add(name, sig, false, impl)
	return c
}

// StaticMethod adds a static method and returns c.
func (c *Class) StaticMethod(name, sig string, impl Impl) *Class {
	c.add(name, sig, true, impl)
	return c
}

func (c *Class) add(name, sig string, static bool, impl Impl) {
	m := &Method{
		Name:      name,
		Signature: sig,
		Static:    static,
		Impl:      impl,
		class:     c,
		plan:      signature.MustParse(sig),
		id:        types.MethodID(alloc()),
	}
	c.jvm.mu.Lock()
	defer c.jvm.mu.Unlock()
	c.methods = append(c.methods, m)
	c.jvm.methods[m.id] = m
}

// Lookup finds a method declared on c or inherited from its superclasses.
func (c *Class) Lookup(name, sig string, static bool) *Method {
	for k := c; k != nil; k = k.Super {
		for _, m := range k.methods {
			if m.Name == name && m.Signature == sig && m.Static == static {
				return m
			}
		}
	}
	return nil
}

// IsSubclassOf reports whether c is sup or extends it.
func (c *Class) IsSubclassOf(sup *Class) bool {
	for k := c; k != nil; k = k.Super {
		if k == sup {
			return true
		}
	}
	return false
}

// Call is the context of a Go method body.
type Call struct {
	JVM    *JVM
	Env    types.EnvPtr
	Method *Method
	This   *Object
	Args   []types.Value
}

// Throw makes a new exception of class pending on the calling thread.
func (c *Call) Throw(class, msg string) types.Value {
	c.JVM.throwNew(c.Env, class, msg)
	return 0
}

// NewString returns a local reference to a new string.
func (c *Call) NewString(s string) types.Value {
	return types.ObjectValue(c.JVM.NewLocal(c.Env, c.JVM.NewObject("java/lang/String", s)))
}

// Arg dereferences the reference argument i.
func (c *Call) Arg(i int) *Object {
	return c.JVM.Deref(c.Args[i].Object())
}

// NewObject creates an unreferenced object of class. For strings text is the
// content, for throwables the message.
func (j *JVM) NewObject(class, text string) *Object {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.newObjectLocked(class, text)
}

func (j *JVM) newObjectLocked(class, text string) *Object {
	c := j.classes[class]
	o := &Object{Class: c}
	if c != nil && c.IsSubclassOf(j.classes["java/lang/Throwable"]) {
		o.Message = text
	} else {
		o.Text = text
	}
	return o
}

// NewLocal creates a local reference to o on env.
func (j *JVM) NewLocal(env types.EnvPtr, o *Object) types.Object {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.newRefLocked(env, o, types.LocalRefType)
}

// NewGlobal creates a global reference to o.
func (j *JVM) NewGlobal(o *Object) types.Object {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.newRefLocked(0, o, types.GlobalRefType)
}

func (j *JVM) newRefLocked(env types.EnvPtr, o *Object, class types.RefType) types.Object {
	if o == nil {
		return types.Null
	}
	h := types.Object(alloc())
	j.handles[h] = &handle{obj: o, class: class, live: true}
	if class == types.LocalRefType {
		if t := j.threads[env]; t != nil && len(t.frames) > 0 {
			top := len(t.frames) - 1
			t.frames[top] = append(t.frames[top], h)
		}
	}
	return h
}

// Deref returns the object behind a live handle, or nil.
func (j *JVM) Deref(h types.Object) *Object {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.derefLocked(h)
}

func (j *JVM) derefLocked(h types.Object) *Object {
	if r := j.handles[h]; r != nil && r.live {
		return r.obj
	}
	return nil
}

// ClassObject returns the Class object of the named class.
func (j *JVM) ClassObject(name string) *Object {
	j.mu.Lock()
	defer j.mu.Unlock()
	if c := j.classes[name]; c != nil {
		return c.object
	}
	return nil
}

func (j *JVM) deleteRef(h types.Object, class types.RefType) {
	if h.IsNull() {
		return
	}
	r := j.handles[h]
	if r == nil || !r.live || r.class != class {
		j.doubleFree++
		return
	}
	r.live = false
	j.deleted = append(j.deleted, Deletion{Handle: h, Class: class})
}

// Attach registers a new thread and returns its JNIEnv pointer. The thread
// becomes the one GetEnv reports.
func (j *JVM) Attach(name string) types.EnvPtr {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.attachLocked(name, false)
}

func (j *JVM) attachLocked(name string, daemon bool) types.EnvPtr {
	env := types.EnvPtr(alloc())
	j.threads[env] = &thread{name: name, daemon: daemon}
	j.current = env
	return env
}

// Threads returns the names of attached threads.
func (j *JVM) Threads() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	names := make([]string, 0, len(j.threads))
	for _, t := range j.threads {
		names = append(names, t.name)
	}
	return names
}

// IsDaemon reports whether the thread of env was attached as a daemon.
func (j *JVM) IsDaemon(env types.EnvPtr) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	t := j.threads[env]
	return t != nil && t.daemon
}

// Throw makes a new exception pending on env.
func (j *JVM) Throw(env types.EnvPtr, class, msg string) {
	j.throwNew(env, class, msg)
}

func (j *JVM) throwNew(env types.EnvPtr, class, msg string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.throwLocked(env, j.newObjectLocked(class, msg))
}

func (j *JVM) throwLocked(env types.EnvPtr, o *Object) {
	t := j.threads[env]
	if t == nil {
		return
	}
	t.pending = j.newRefLocked(env, o, types.LocalRefType)
}

// Pending returns the pending exception object of env, or nil.
func (j *JVM) Pending(env types.EnvPtr) *Object {
	j.mu.Lock()
	defer j.mu.Unlock()
	if t := j.threads[env]; t != nil && !t.pending.IsNull() {
		return j.handles[t.pending].obj
	}
	return nil
}

func (j *JVM) pendingLocked(env types.EnvPtr) bool {
	t := j.threads[env]
	return t != nil && !t.pending.IsNull()
}

// Fail makes the next call of slot return rc. A non-empty throw also leaves a
// new exception of that class pending.
func (j *JVM) Fail(slot string, rc types.Jint, throw string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.failures[slot] = failure{rc: rc, throw: throw}
}

func (j *JVM) failed(env types.EnvPtr, slot string) (types.Jint, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	f, ok := j.failures[slot]
	if !ok {
		return 0, false
	}
	delete(j.failures, slot)
	if f.throw != "" {
		j.throwLocked(env, j.newObjectLocked(f.throw, slot+" failed"))
	}
	return f.rc, true
}

// Exception slots that JNI allows while an exception is pending.
var pendingSafe = map[string]bool{
	"ExceptionOccurred":   true,
	"ExceptionDescribe":   true,
	"ExceptionClear":      true,
	"ExceptionCheck":      true,
	"DeleteLocalRef":      true,
	"DeleteGlobalRef":     true,
	"DeleteWeakGlobalRef": true,
	"PopLocalFrame":       true,
	"PushLocalFrame":      true,
	"MonitorExit":         true,
}

// enter records a slot call and flags calls made with an exception pending.
func (j *JVM) enter(env types.EnvPtr, slot string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = append(j.calls, slot)
	if !pendingSafe[slot] && j.pendingLocked(env) {
		j.violations = append(j.violations, slot)
	}
}

// Calls returns the slot call log.
func (j *JVM) Calls() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.calls...)
}

// ResetCalls clears the call log.
func (j *JVM) ResetCalls() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = nil
}

// Violations returns slots called while an exception was pending.
func (j *JVM) Violations() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.violations...)
}

// Deleted returns the deletion log.
func (j *JVM) Deleted() []Deletion {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]Deletion(nil), j.deleted...)
}

// DoubleFrees counts deletes of dead, unknown or mismatched handles.
func (j *JVM) DoubleFrees() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.doubleFree
}

// Live counts live handles of class.
func (j *JVM) Live(class types.RefType) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	n := 0
	for _, r := range j.handles {
		if r.live && r.class == class {
			n++
		}
	}
	return n
}

// Described returns class names of exceptions passed to ExceptionDescribe.
func (j *JVM) Described() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.described...)
}

// Natives returns the natives registered on class.
func (j *JVM) Natives(class string) []Native {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]Native(nil), j.natives[class]...)
}

// Options returns the option strings of the last CreateJavaVM call.
func (j *JVM) Options() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.options...)
}

// Created reports whether the VM has been created and not destroyed.
func (j *JVM) Created() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.created
}

// VMPtr returns the JavaVM pointer of the VM.
func (j *JVM) VMPtr() types.VMPtr { return j.vm }

// EnvFuncs returns the JNIEnv table.
func (j *JVM) EnvFuncs() *native.EnvFuncs { return j.env }

// VMFuncs returns the JavaVM table.
func (j *JVM) VMFuncs() *native.VMFuncs { return j.vmf }

// LibFuncs returns the exported library functions.
func (j *JVM) LibFuncs() *native.LibFuncs { return j.lib }

// BindEnv implements native.Binder.
func (j *JVM) BindEnv(env types.EnvPtr) (*native.EnvFuncs, error) { return j.env, nil }

// BindVM implements native.Binder.
func (j *JVM) BindVM(vm types.VMPtr) (*native.VMFuncs, error) { return j.vmf, nil }

var _ native.Binder = (*JVM)(nil)

// CString reads a NUL-terminated C string.
func CString(p *byte) string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	for ptr := unsafe.Pointer(p); *(*byte)(ptr) != 0; ptr = unsafe.Add(ptr, 1) {
		b.WriteByte(*(*byte)(ptr))
	}
	return b.String()
}
