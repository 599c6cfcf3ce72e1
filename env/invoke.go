package env

import (
	"github.com/wippyai/jni-runtime/errors"
	"github.com/wippyai/jni-runtime/signature"
	"github.com/wippyai/jni-runtime/types"
)

// Invoke calls m with args and returns the result as a jvalue, choosing the
// call family from the method's return kind. obj is ignored for static
// methods. Reference results are local references owned by the caller.
func (e *Env) Invoke(obj types.Object, m Method, args ...types.Value) (types.Value, error) {
	plan, err := signature.Parse(m.Signature)
	if err != nil {
		return 0, err
	}
	if len(args) != len(plan.Args) {
		return 0, errors.New(errors.PhaseInvoke, errors.KindInvalidInput).
			Op(m.Name).
			Sig(m.Signature).
			Detail("expected %d arguments, got %d", len(plan.Args), len(args)).
			Build()
	}
	if m.Static {
		return e.invokeStatic(m, plan.Return, args)
	}
	return e.invokeVirtual(obj, m, plan.Return, args)
}

func (e *Env) invokeVirtual(obj types.Object, m Method, ret types.Kind, args []types.Value) (types.Value, error) {
	switch ret {
	case types.KindVoid:
		return 0, e.CallVoidMethod(obj, m.ID, args...)
	case types.KindBoolean:
		v, err := e.CallBooleanMethod(obj, m.ID, args...)
		return types.BoolValue(v), err
	case types.KindByte:
		v, err := e.CallByteMethod(obj, m.ID, args...)
		return types.ByteValue(v), err
	case types.KindChar:
		v, err := e.CallCharMethod(obj, m.ID, args...)
		return types.CharValue(v), err
	case types.KindShort:
		v, err := e.CallShortMethod(obj, m.ID, args...)
		return types.ShortValue(v), err
	case types.KindInt:
		v, err := e.CallIntMethod(obj, m.ID, args...)
		return types.IntValue(v), err
	case types.KindLong:
		v, err := e.CallLongMethod(obj, m.ID, args...)
		return types.LongValue(v), err
	case types.KindFloat:
		v, err := e.CallFloatMethod(obj, m.ID, args...)
		return types.FloatValue(v), err
	case types.KindDouble:
		v, err := e.CallDoubleMethod(obj, m.ID, args...)
		return types.DoubleValue(v), err
	default:
		v, err := e.CallObjectMethod(obj, m.ID, args...)
		return types.ObjectValue(v), err
	}
}

func (e *Env) invokeStatic(m Method, ret types.Kind, args []types.Value) (types.Value, error) {
	switch ret {
	case types.KindVoid:
		return 0, e.CallStaticVoidMethod(m.Class, m.ID, args...)
	case types.KindBoolean:
		v, err := e.CallStaticBooleanMethod(m.Class, m.ID, args...)
		return types.BoolValue(v), err
	case types.KindByte:
		v, err := e.CallStaticByteMethod(m.Class, m.ID, args...)
		return types.ByteValue(v), err
	case types.KindChar:
		v, err := e.CallStaticCharMethod(m.Class, m.ID, args...)
		return types.CharValue(v), err
	case types.KindShort:
		v, err := e.CallStaticShortMethod(m.Class, m.ID, args...)
		return types.ShortValue(v), err
	case types.KindInt:
		v, err := e.CallStaticIntMethod(m.Class, m.ID, args...)
		return types.IntValue(v), err
	case types.KindLong:
		v, err := e.CallStaticLongMethod(m.Class, m.ID, args...)
		return types.LongValue(v), err
	case types.KindFloat:
		v, err := e.CallStaticFloatMethod(m.Class, m.ID, args...)
		return types.FloatValue(v), err
	case types.KindDouble:
		v, err := e.CallStaticDoubleMethod(m.Class, m.ID, args...)
		return types.DoubleValue(v), err
	default:
		v, err := e.CallStaticObjectMethod(m.Class, m.ID, args...)
		return types.ObjectValue(v), err
	}
}
