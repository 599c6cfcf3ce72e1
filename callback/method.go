package callback

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"sync"

	"github.com/ebitengine/purego"
	"go.uber.org/zap"

	"github.com/wippyai/jni-runtime/env"
	"github.com/wippyai/jni-runtime/errors"
	"github.com/wippyai/jni-runtime/native"
	"github.com/wippyai/jni-runtime/refs"
	"github.com/wippyai/jni-runtime/signature"
	"github.com/wippyai/jni-runtime/types"
)

// RuntimeException is the class thrown into the VM when a host function
// returns an error or panics.
const RuntimeException = "java/lang/RuntimeException"

var newCallback = purego.NewCallback

var (
	typeEnv    = reflect.TypeFor[*env.Env]()
	typeEnvPtr = reflect.TypeFor[types.EnvPtr]()
	typeObject = reflect.TypeFor[types.Object]()
	typeBool   = reflect.TypeFor[bool]()
	typeError  = reflect.TypeFor[error]()
)

// Method is a Go function exposed to the VM as a native method. Its name and
// signature buffers are pinned until Release, and a pinned Method stays
// reachable until then.
type Method struct {
	Name      string
	Signature string
	Plan      signature.Plan
	FnPtr     uintptr

	h      *handler
	cfn    reflect.Value
	name   []byte
	sig    []byte
	pinner runtime.Pinner
}

// pinned holds every Method with pinned buffers, so a Pinner is never
// collected while it still pins.
var pinned = struct {
	sync.Mutex
	methods map[*Method]struct{}
}{methods: make(map[*Method]struct{})}

// Option configures a Method.
type Option func(*options)

type options struct {
	name   string
	binder native.Binder
	ledger *refs.Ledger
}

// WithName sets the Java method name. It defaults to the Go function's name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithBinder sets how the trampoline binds a JNIEnv it has not seen before.
func WithBinder(b native.Binder) Option {
	return func(o *options) { o.binder = b }
}

// WithLedger sets the reference ledger of Envs the trampoline binds for
// threads it has not seen before. Registry.Register fills it from the
// registering Env when unset.
func WithLedger(l *refs.Ledger) Option {
	return func(o *options) { o.ledger = l }
}

// NewMethod adapts fn to the native method signature sig. fn takes one of two
// shapes:
//
//	func(e *env.Env, this types.Object, args...) [ret] [error]
//	func(e types.EnvPtr, this types.Object, args...) [ret]
//
// Argument and return types are the jni scalar types of the signature, with
// bool accepted for Z. this is the receiver, or the class for static methods.
// A returned error or a panic is thrown into the VM and the method returns the
// zero value. A returned ThrowableError is rethrown as is.
//
// Methods returning F or D are rejected with KindUnsupported: C callbacks can
// only hand back an integer register.
func NewMethod(sig string, fn any, opts ...Option) (*Method, error) {
	o := options{binder: native.Purego}
	for _, opt := range opts {
		opt(&o)
	}

	plan, err := signature.Parse(sig)
	if err != nil {
		return nil, err
	}
	if plan.Return == types.KindFloat || plan.Return == types.KindDouble {
		return nil, errors.New(errors.PhaseCallback, errors.KindUnsupported).
			Sig(sig).
			Detail("native methods cannot return %s", plan.Return).
			Build()
	}
	h, err := newHandler(plan, fn)
	if err != nil {
		return nil, err
	}
	h.binder = o.binder
	h.ledger = o.ledger

	name := o.name
	if name == "" {
		name = funcName(h.fn)
	}
	if name == "" {
		return nil, errors.New(errors.PhaseCallback, errors.KindInvalidInput).
			Sig(sig).
			Detail("method name is empty").
			Build()
	}
	h.name = name

	cfn := reflect.MakeFunc(cType(plan), h.call)
	ptr, err := callbackPtr(cfn)
	if err != nil {
		return nil, err
	}

	m := &Method{
		Name:      name,
		Signature: sig,
		Plan:      plan,
		FnPtr:     ptr,
		h:         h,
		cfn:       cfn,
		name:      append([]byte(name), 0),
		sig:       append([]byte(sig), 0),
	}
	m.pin()

	Logger().Debug("created native method",
		zap.String("name", name),
		zap.String("signature", sig),
		zap.Bool("raw", h.raw))
	return m, nil
}

// MustNewMethod is NewMethod that panics on error.
func MustNewMethod(sig string, fn any, opts ...Option) *Method {
	m, err := NewMethod(sig, fn, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Native returns the registration record of m, pinning its buffers again if m
// was released. Its pointers stay valid until Release.
func (m *Method) Native() native.NativeMethod {
	m.pin()
	return native.NativeMethod{
		Name:      &m.name[0],
		Signature: &m.sig[0],
		FnPtr:     m.FnPtr,
	}
}

// Release unpins the name and signature buffers and lets m be collected. It
// is safe to call more than once. The C function pointer is not reclaimed;
// purego callbacks live for the rest of the process.
func (m *Method) Release() {
	pinned.Lock()
	defer pinned.Unlock()
	if _, ok := pinned.methods[m]; !ok {
		return
	}
	delete(pinned.methods, m)
	m.pinner.Unpin()
}

func (m *Method) pin() {
	pinned.Lock()
	defer pinned.Unlock()
	if _, ok := pinned.methods[m]; ok {
		return
	}
	m.pinner.Pin(&m.name[0])
	m.pinner.Pin(&m.sig[0])
	pinned.methods[m] = struct{}{}
}

func (m *Method) isPinned() bool {
	pinned.Lock()
	defer pinned.Unlock()
	_, ok := pinned.methods[m]
	return ok
}

// Call runs the trampoline as the VM would, converting args by the plan.
func (m *Method) Call(ptr types.EnvPtr, this types.Object, args ...types.Value) (types.Value, error) {
	if len(args) != len(m.Plan.Args) {
		return 0, errors.New(errors.PhaseCallback, errors.KindInvalidInput).
			Op(m.Name).
			Sig(m.Signature).
			Detail("expected %d arguments, got %d", len(m.Plan.Args), len(args)).
			Build()
	}
	in := make([]reflect.Value, 0, 2+len(args))
	in = append(in, reflect.ValueOf(ptr), reflect.ValueOf(this))
	for i, k := range m.Plan.Args {
		in = append(in, fromValue(k, args[i]))
	}
	out := m.cfn.Call(in)
	if len(out) == 0 {
		return 0, nil
	}
	return toValue(m.Plan.Return, out[0]), nil
}

func callbackPtr(cfn reflect.Value) (ptr uintptr, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Panic(errors.PhaseCallback, "NewCallback", r)
		}
	}()
	return newCallback(cfn.Interface()), nil
}

// cType is the C shape of a native method: (JNIEnv*, jobject, args...) ret.
func cType(plan signature.Plan) reflect.Type {
	in := make([]reflect.Type, 0, 2+len(plan.Args))
	in = append(in, typeEnvPtr, typeObject)
	for _, k := range plan.Args {
		in = append(in, k.GoType())
	}
	var out []reflect.Type
	if plan.Return != types.KindVoid {
		out = append(out, plan.Return.GoType())
	}
	return reflect.FuncOf(in, out, false)
}

func funcName(fn reflect.Value) string {
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return ""
	}
	name := f.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}

func fromValue(k types.Kind, v types.Value) reflect.Value {
	switch k {
	case types.KindBoolean:
		return reflect.ValueOf(types.Bool(v.Bool()))
	case types.KindByte:
		return reflect.ValueOf(v.Byte())
	case types.KindChar:
		return reflect.ValueOf(v.Char())
	case types.KindShort:
		return reflect.ValueOf(v.Short())
	case types.KindInt:
		return reflect.ValueOf(v.Int())
	case types.KindLong:
		return reflect.ValueOf(v.Long())
	case types.KindFloat:
		return reflect.ValueOf(v.Float())
	case types.KindDouble:
		return reflect.ValueOf(v.Double())
	default:
		return reflect.ValueOf(v.Object())
	}
}

func toValue(k types.Kind, rv reflect.Value) types.Value {
	switch k {
	case types.KindBoolean:
		return types.BoolValue(types.IsTrue(types.Jboolean(rv.Uint())))
	case types.KindByte:
		return types.ByteValue(types.Jbyte(rv.Int()))
	case types.KindChar:
		return types.CharValue(types.Jchar(rv.Uint()))
	case types.KindShort:
		return types.ShortValue(types.Jshort(rv.Int()))
	case types.KindInt:
		return types.IntValue(types.Jint(rv.Int()))
	case types.KindLong:
		return types.LongValue(rv.Int())
	case types.KindFloat:
		return types.FloatValue(types.Jfloat(rv.Float()))
	case types.KindDouble:
		return types.DoubleValue(rv.Float())
	default:
		return types.ObjectValue(types.Object(rv.Uint()))
	}
}

func mismatch(plan signature.Plan, t reflect.Type, format string, args ...any) error {
	return errors.TypeMismatch(errors.PhaseCallback, plan.Signature, t.String(), fmt.Sprintf(format, args...))
}

func describeKind(k types.Kind) string {
	if k == types.KindBoolean {
		return fmt.Sprintf("%s or bool", k.GoType())
	}
	return k.GoType().String()
}
