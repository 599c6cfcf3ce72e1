package signature

import (
	"strings"

	"github.com/wippyai/jni-runtime/errors"
	"github.com/wippyai/jni-runtime/types"
)

// Op is the operation name reported by signature errors.
const Op = "jni.method"

// Plan is a parsed signature.
type Plan struct {
	Signature string
	Args      []types.Kind
	Return    types.Kind
}

// Kinds returns the return kind followed by the argument kinds.
func (p Plan) Kinds() []types.Kind {
	kinds := make([]types.Kind, 0, 1+len(p.Args))
	kinds = append(kinds, p.Return)
	return append(kinds, p.Args...)
}

func (p Plan) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, k := range p.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k.String())
	}
	b.WriteString(") ")
	b.WriteString(p.Return.String())
	return b.String()
}

var objectKinds = map[string]types.Kind{
	"java/lang/String": types.KindString,
	"java/lang/Class":  types.KindClass,
}

// Parse compiles sig in a single pass.
func Parse(sig string) (Plan, error) {
	if sig == "" || sig[0] != '(' {
		return Plan{}, invalid(sig, "missing '('")
	}
	args, ret, found := strings.Cut(sig[1:], ")")
	if !found {
		return Plan{}, invalid(sig, "missing ')'")
	}
	if ret == "" {
		return Plan{}, invalid(sig, "empty return type")
	}

	work := ret + args
	kinds := make([]types.Kind, 0, 4)
	for len(work) > 0 {
		dim := 0
		for dim < len(work) && work[dim] == '[' {
			dim++
		}
		work = work[dim:]
		if work == "" {
			return Plan{}, invalid(sig, "array without element type")
		}

		code := work[0]
		switch {
		case strings.IndexByte("ZBCSIJFD", code) >= 0 || (code == 'V' && dim == 0 && len(kinds) == 0):
			work = work[1:]
			k, _ := types.PrimitiveKind(code)
			switch dim {
			case 0:
				kinds = append(kinds, k)
			case 1:
				kinds = append(kinds, types.ArrayOf(k))
			default:
				kinds = append(kinds, types.KindObjectArray)
			}
		case code == 'L':
			name, rest, ok := strings.Cut(work[1:], ";")
			if !ok {
				return Plan{}, invalid(sig, "unterminated class name")
			}
			work = rest
			if dim > 0 {
				kinds = append(kinds, types.KindObjectArray)
				continue
			}
			if k, special := objectKinds[name]; special {
				kinds = append(kinds, k)
			} else {
				kinds = append(kinds, types.KindObject)
			}
		default:
			return Plan{}, invalid(sig, "unexpected type code "+string(rune(code)))
		}
	}

	return Plan{Signature: sig, Return: kinds[0], Args: kinds[1:]}, nil
}

// MustParse is Parse that panics on error. For signatures known at compile time.
func MustParse(sig string) Plan {
	p, err := Parse(sig)
	if err != nil {
		panic(err)
	}
	return p
}

func invalid(sig, detail string) error {
	return errors.Statusf(types.EINVAL, Op, "%s in %q", detail, sig)
}
