package callback

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/wippyai/jni-runtime/env"
	"github.com/wippyai/jni-runtime/errors"
	"github.com/wippyai/jni-runtime/native"
	"github.com/wippyai/jni-runtime/refs"
	"github.com/wippyai/jni-runtime/signature"
	"github.com/wippyai/jni-runtime/types"
)

// handler adapts the C call shape to a host function.
type handler struct {
	plan   signature.Plan
	fn     reflect.Value
	name   string
	binder native.Binder
	ledger *refs.Ledger

	raw      bool
	hasErr   bool
	boolArgs []bool
	boolRet  bool
	ret      reflect.Type
}

func newHandler(plan signature.Plan, fn any) (*handler, error) {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, errors.TypeMismatch(errors.PhaseCallback, plan.Signature, fmt.Sprintf("%T", fn), "handler must be a function")
	}
	t := rv.Type()
	if t.IsVariadic() {
		return nil, mismatch(plan, t, "handler must not be variadic")
	}

	h := &handler{
		plan:     plan,
		fn:       rv,
		boolArgs: make([]bool, len(plan.Args)),
		ret:      plan.Return.GoType(),
	}

	if t.NumIn() != 2+len(plan.Args) {
		return nil, mismatch(plan, t, "expected %d parameters, got %d", 2+len(plan.Args), t.NumIn())
	}
	switch t.In(0) {
	case typeEnv:
	case typeEnvPtr:
		h.raw = true
	default:
		return nil, mismatch(plan, t, "first parameter must be *env.Env or types.EnvPtr")
	}
	if t.In(1) != typeObject {
		return nil, mismatch(plan, t, "second parameter must be types.Object")
	}
	for i, k := range plan.Args {
		in := t.In(2 + i)
		switch {
		case in == k.GoType():
		case k == types.KindBoolean && in == typeBool && !h.raw:
			h.boolArgs[i] = true
		default:
			return nil, mismatch(plan, t, "argument %d: want %s, got %s", i, describeKind(k), in)
		}
	}

	outs := t.NumOut()
	if outs > 0 && t.Out(outs-1) == typeError {
		if h.raw {
			return nil, mismatch(plan, t, "raw handlers cannot return an error")
		}
		h.hasErr = true
		outs--
	}
	if plan.Return == types.KindVoid {
		if outs != 0 {
			return nil, mismatch(plan, t, "void method returns %d values", outs)
		}
		return h, nil
	}
	if outs != 1 {
		return nil, mismatch(plan, t, "expected 1 result, got %d", outs)
	}
	switch out := t.Out(0); {
	case out == h.ret:
	case plan.Return == types.KindBoolean && out == typeBool && !h.raw:
		h.boolRet = true
	default:
		return nil, mismatch(plan, t, "result: want %s, got %s", describeKind(plan.Return), out)
	}
	return h, nil
}

// call is the body of the trampoline. It never lets a panic or error cross
// into the VM.
func (h *handler) call(in []reflect.Value) (out []reflect.Value) {
	ptr := types.EnvPtr(in[0].Uint())
	var (
		e    *env.Env
		temp bool
	)
	defer func() {
		if r := recover(); r != nil {
			if e == nil {
				e, temp = h.envOrLog(ptr)
			}
			h.fail(e, errors.Panic(errors.PhaseCallback, h.name, r))
			out = h.zero()
		}
		if temp {
			e.ClearLastException()
		}
	}()

	if h.raw {
		return h.fn.Call(in)
	}

	if e, temp = h.envOrLog(ptr); e == nil {
		return h.zero()
	}

	args := make([]reflect.Value, len(in))
	args[0] = reflect.ValueOf(e)
	args[1] = in[1]
	for i := range h.plan.Args {
		v := in[2+i]
		if h.boolArgs[i] {
			v = reflect.ValueOf(types.IsTrue(types.Jboolean(v.Uint())))
		}
		args[2+i] = v
	}

	res := h.fn.Call(args)
	if h.hasErr {
		last := res[len(res)-1]
		res = res[:len(res)-1]
		if !last.IsNil() {
			h.fail(e, last.Interface().(error))
			return h.zero()
		}
	}
	if h.plan.Return == types.KindVoid {
		return nil
	}
	if h.boolRet {
		return []reflect.Value{reflect.ValueOf(types.Bool(res[0].Bool()))}
	}
	return res
}

// env returns the cached Env of ptr. A thread the VM attached on its own has
// none; it gets an uncached Env for this call only, sharing the VM's ledger.
func (h *handler) env(ptr types.EnvPtr) (e *env.Env, temp bool, err error) {
	if e, ok := env.Lookup(ptr); ok {
		return e, false, nil
	}
	e, err = env.Bind(ptr, h.binder, env.WithLedger(h.ledger))
	return e, err == nil, err
}

func (h *handler) envOrLog(ptr types.EnvPtr) (*env.Env, bool) {
	e, temp, err := h.env(ptr)
	if err != nil {
		Logger().Error("native method called with unusable env",
			zap.String("method", h.name),
			zap.Error(err))
		return nil, false
	}
	return e, temp
}

// fail throws err into the VM unless an exception is already pending.
func (h *handler) fail(e *env.Env, err error) {
	if e == nil {
		return
	}
	if e.ExceptionCheck() {
		return
	}

	Logger().Debug("native method failed",
		zap.String("method", h.name),
		zap.Error(err))

	var throwErr error
	if thr, ok := errors.AsThrowable(err); ok && !thr.Ref.IsNull() {
		throwErr = e.Throw(thr.Ref)
	} else {
		throwErr = e.ThrowNewClass(RuntimeException, err.Error())
	}
	if throwErr != nil {
		Logger().Error("cannot throw from native method",
			zap.String("method", h.name),
			zap.Error(err),
			zap.NamedError("throw", throwErr))
	}
}

func (h *handler) zero() []reflect.Value {
	if h.ret == nil {
		return nil
	}
	return []reflect.Value{reflect.Zero(h.ret)}
}
