package signature

import (
	"fmt"
	"strconv"
	"unicode/utf16"

	"github.com/wippyai/jni-runtime/errors"
	"github.com/wippyai/jni-runtime/types"
)

// StringMaker creates a java.lang.String for a textual argument.
type StringMaker func(s string) (types.Object, error)

// Marshal converts textual arguments to jvalues following plan.Args.
// String arguments need mk; the literal "null" passes a null reference.
func Marshal(plan Plan, args []string, mk StringMaker) ([]types.Value, error) {
	if len(args) != len(plan.Args) {
		return nil, errors.New(errors.PhaseSignature, errors.KindInvalidInput).
			Sig(plan.Signature).
			Detail("expected %d arguments, got %d", len(plan.Args), len(args)).
			Build()
	}

	values := make([]types.Value, len(args))
	for i, k := range plan.Args {
		v, err := ParseValue(k, args[i], mk)
		if err != nil {
			mismatch := errors.TypeMismatch(errors.PhaseSignature, plan.Signature, "string",
				fmt.Sprintf("argument %d as %s", i, k))
			mismatch.Cause = err
			return nil, mismatch
		}
		values[i] = v
	}
	return values, nil
}

// ParseValue converts one textual argument to a jvalue of kind k.
func ParseValue(k types.Kind, s string, mk StringMaker) (types.Value, error) {
	switch k {
	case types.KindBoolean:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return 0, err
		}
		return types.BoolValue(b), nil
	case types.KindByte:
		n, err := parseInt(k, s, 8)
		if err != nil {
			return 0, err
		}
		return types.ByteValue(types.Jbyte(n)), nil
	case types.KindChar:
		u := utf16.Encode([]rune(s))
		if len(u) != 1 {
			return 0, errors.InvalidInput(errors.PhaseSignature, "jchar needs exactly one UTF-16 unit")
		}
		return types.CharValue(u[0]), nil
	case types.KindShort:
		n, err := parseInt(k, s, 16)
		if err != nil {
			return 0, err
		}
		return types.ShortValue(types.Jshort(n)), nil
	case types.KindInt:
		n, err := parseInt(k, s, 32)
		if err != nil {
			return 0, err
		}
		return types.IntValue(types.Jint(n)), nil
	case types.KindLong:
		n, err := parseInt(k, s, 64)
		if err != nil {
			return 0, err
		}
		return types.LongValue(n), nil
	case types.KindFloat:
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return 0, err
		}
		return types.FloatValue(types.Jfloat(f)), nil
	case types.KindDouble:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		return types.DoubleValue(f), nil
	}

	if s == "null" {
		return types.ObjectValue(types.Null), nil
	}
	if k == types.KindString && mk != nil {
		obj, err := mk(s)
		if err != nil {
			return 0, err
		}
		return types.ObjectValue(obj), nil
	}
	return 0, errors.Unsupported(errors.PhaseSignature, "textual "+k.String()+" argument")
}

func parseInt(k types.Kind, s string, bits int) (int64, error) {
	n, err := strconv.ParseInt(s, 0, bits)
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return 0, errors.Overflow(errors.PhaseSignature, s, k.String())
	}
	return n, err
}

// Format renders v as kind k.
func Format(k types.Kind, v types.Value) string {
	switch k {
	case types.KindVoid:
		return "void"
	case types.KindBoolean:
		return strconv.FormatBool(v.Bool())
	case types.KindByte:
		return strconv.Itoa(int(v.Byte()))
	case types.KindChar:
		return strconv.QuoteRune(rune(v.Char()))
	case types.KindShort:
		return strconv.Itoa(int(v.Short()))
	case types.KindInt:
		return strconv.Itoa(int(v.Int()))
	case types.KindLong:
		return strconv.FormatInt(v.Long(), 10)
	case types.KindFloat:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case types.KindDouble:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	}
	if v.Object().IsNull() {
		return "null"
	}
	return k.String() + "@" + strconv.FormatUint(uint64(v.Object()), 16)
}
