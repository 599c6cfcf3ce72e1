package callback

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/jni-runtime/env"
	"github.com/wippyai/jni-runtime/errors"
	"github.com/wippyai/jni-runtime/internal/jvmtest"
	"github.com/wippyai/jni-runtime/refs"
	"github.com/wippyai/jni-runtime/types"
)

var fakePtr atomic.Uintptr

func init() {
	fakePtr.Store(0x7f0000)
	newCallback = func(fn any) uintptr {
		return fakePtr.Add(16)
	}
}

func newEnv(t *testing.T) (*jvmtest.JVM, *env.Env) {
	t.Helper()
	j := jvmtest.New()
	ptr := j.Attach("test")
	e, err := env.FromPtr(ptr, j)
	require.NoError(t, err)
	t.Cleanup(func() {
		env.Forget(ptr)
		assert.Empty(t, j.Violations(), "calls issued with an exception pending")
	})
	return j, e
}

// link routes VM calls of m's function pointer to its trampoline.
func link(j *jvmtest.JVM, m *Method) {
	j.Link(m.FnPtr, func(ptr types.EnvPtr, this types.Object, args []types.Value) types.Value {
		v, _ := m.Call(ptr, this, args...)
		return v
	})
}

func add(_ *env.Env, _ types.Object, a, b types.Jint) types.Jint {
	return a + b
}

func TestNewMethod(t *testing.T) {
	tests := []struct {
		name string
		sig  string
		fn   any
		raw  bool
	}{
		{"host int", "(II)I", add, false},
		{"host bool", "(Z)Z", func(*env.Env, types.Object, bool) bool { return true }, false},
		{"host jboolean", "(Z)Z", func(*env.Env, types.Object, types.Jboolean) types.Jboolean { return types.True }, false},
		{"host void with error", "()V", func(*env.Env, types.Object) error { return nil }, false},
		{"host result with error", "(D)J", func(*env.Env, types.Object, types.Jdouble) (types.Jlong, error) { return 0, nil }, false},
		{"host objects", "(Ljava/lang/String;[I)Ljava/lang/Object;", func(*env.Env, types.Object, types.String, types.IntArray) types.Object { return types.Null }, false},
		{"raw", "(BCSF)V", func(types.EnvPtr, types.Object, types.Jbyte, types.Jchar, types.Jshort, types.Jfloat) {}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMethod(tt.sig, tt.fn, WithName("m"))
			require.NoError(t, err)
			defer m.Release()

			assert.Equal(t, "m", m.Name)
			assert.Equal(t, tt.sig, m.Signature)
			assert.Equal(t, tt.sig, m.Plan.Signature)
			assert.NotZero(t, m.FnPtr)
			assert.Equal(t, tt.raw, m.h.raw)

			rec := m.Native()
			assert.Equal(t, "m", jvmtest.CString(rec.Name))
			assert.Equal(t, tt.sig, jvmtest.CString(rec.Signature))
			assert.Equal(t, m.FnPtr, rec.FnPtr)
		})
	}
}

func TestNewMethodRejects(t *testing.T) {
	tests := []struct {
		name string
		sig  string
		fn   any
		kind errors.Kind
	}{
		{"not a function", "()V", 42, errors.KindTypeMismatch},
		{"nil", "()V", nil, errors.KindTypeMismatch},
		{"nil func", "()V", (func(*env.Env, types.Object))(nil), errors.KindTypeMismatch},
		{"variadic", "()V", func(*env.Env, types.Object, ...types.Jint) {}, errors.KindTypeMismatch},
		{"parameter count", "(I)V", func(*env.Env, types.Object) {}, errors.KindTypeMismatch},
		{"first parameter", "()V", func(int, types.Object) {}, errors.KindTypeMismatch},
		{"second parameter", "()V", func(*env.Env, int) {}, errors.KindTypeMismatch},
		{"argument type", "(I)V", func(*env.Env, types.Object, int) {}, errors.KindTypeMismatch},
		{"long as int", "(J)V", func(*env.Env, types.Object, types.Jint) {}, errors.KindTypeMismatch},
		{"bool in raw", "(Z)V", func(types.EnvPtr, types.Object, bool) {}, errors.KindTypeMismatch},
		{"error in raw", "()V", func(types.EnvPtr, types.Object) error { return nil }, errors.KindTypeMismatch},
		{"void with result", "()V", func(*env.Env, types.Object) types.Jint { return 0 }, errors.KindTypeMismatch},
		{"missing result", "()I", func(*env.Env, types.Object) {}, errors.KindTypeMismatch},
		{"result type", "()I", func(*env.Env, types.Object) types.Jlong { return 0 }, errors.KindTypeMismatch},
		{"float result", "()F", func(*env.Env, types.Object) types.Jfloat { return 0 }, errors.KindUnsupported},
		{"double result", "(D)D", func(types.EnvPtr, types.Object, types.Jdouble) types.Jdouble { return 0 }, errors.KindUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMethod(tt.sig, tt.fn, WithName("m"))
			require.Error(t, err)
			assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseCallback, Kind: tt.kind})
		})
	}

	t.Run("malformed signature", func(t *testing.T) {
		_, err := NewMethod("(I", add)
		assert.ErrorIs(t, err, errors.ErrInvalid)
	})
}

func TestMethodName(t *testing.T) {
	m, err := NewMethod("(II)I", add)
	require.NoError(t, err)
	defer m.Release()
	assert.Equal(t, "add", m.Name)

	m, err = NewMethod("(II)I", add, WithName("sum"))
	require.NoError(t, err)
	defer m.Release()
	assert.Equal(t, "sum", m.Name)
}

func TestMethodRelease(t *testing.T) {
	m := MustNewMethod("(II)I", add)
	assert.True(t, m.isPinned())

	m.Release()
	assert.False(t, m.isPinned())
	m.Release()
	assert.False(t, m.isPinned())

	rec := m.Native()
	assert.True(t, m.isPinned(), "Native pins a released method again")
	assert.Equal(t, "add", jvmtest.CString(rec.Name))
	m.Release()

	for range 4 {
		MustNewMethod("()V", func(*env.Env, types.Object) {}, WithName("dropped")).Release()
	}
	runtime.GC()
	runtime.GC()
}

func TestNewCallbackPanic(t *testing.T) {
	prev := newCallback
	newCallback = func(any) uintptr { panic("too many callbacks") }
	defer func() { newCallback = prev }()

	_, err := NewMethod("(II)I", add)
	assert.ErrorIs(t, err, &errors.Error{Kind: errors.KindPanic})
}

func TestCall(t *testing.T) {
	j, e := newEnv(t)

	sum := MustNewMethod("(II)I", add)
	v, err := sum.Call(e.Ptr(), types.Null, types.IntValue(2), types.IntValue(40))
	require.NoError(t, err)
	assert.Equal(t, types.Jint(42), v.Int())

	_, err = sum.Call(e.Ptr(), types.Null, types.IntValue(2))
	assert.ErrorIs(t, err, &errors.Error{Kind: errors.KindInvalidInput})

	negate := MustNewMethod("(Z)Z", func(_ *env.Env, _ types.Object, b bool) bool { return !b }, WithName("negate"))
	v, err = negate.Call(e.Ptr(), types.Null, types.BoolValue(false))
	require.NoError(t, err)
	assert.True(t, v.Bool())

	var gotThis types.Object
	var gotEnv *env.Env
	scale := MustNewMethod("(D)J", func(e *env.Env, this types.Object, d types.Jdouble) (types.Jlong, error) {
		gotEnv, gotThis = e, this
		return types.Jlong(d * 4), nil
	}, WithName("scale"))
	v, err = scale.Call(e.Ptr(), types.Object(0x42), types.DoubleValue(1.25))
	require.NoError(t, err)
	assert.Equal(t, types.Jlong(5), v.Long())
	assert.Equal(t, types.Object(0x42), gotThis)
	assert.Same(t, e, gotEnv, "trampoline reuses the cached env")

	var rawEnv types.EnvPtr
	raw := MustNewMethod("(J)J", func(p types.EnvPtr, _ types.Object, x types.Jlong) types.Jlong {
		rawEnv = p
		return x + 1
	}, WithName("inc"))
	v, err = raw.Call(e.Ptr(), types.Null, types.LongValue(9))
	require.NoError(t, err)
	assert.Equal(t, types.Jlong(10), v.Long())
	assert.Equal(t, e.Ptr(), rawEnv)

	assert.Nil(t, j.Pending(e.Ptr()))
}

func TestCallThrows(t *testing.T) {
	tests := []struct {
		name    string
		sig     string
		fn      any
		args    []types.Value
		class   string
		message string
	}{
		{
			name:    "error",
			sig:     "()V",
			fn:      func(*env.Env, types.Object) error { return fmt.Errorf("boom") },
			class:   "java/lang/RuntimeException",
			message: "boom",
		},
		{
			name: "error with result",
			sig:  "(I)I",
			fn: func(_ *env.Env, _ types.Object, x types.Jint) (types.Jint, error) {
				return x, fmt.Errorf("bad %d", x)
			},
			args:    []types.Value{types.IntValue(7)},
			class:   "java/lang/RuntimeException",
			message: "bad 7",
		},
		{
			name: "java exception",
			sig:  "()Ljava/lang/Class;",
			fn: func(e *env.Env, _ types.Object) (types.Class, error) {
				return e.FindClass("no/Such")
			},
			class:   "java/lang/NoClassDefFoundError",
			message: "no/Such",
		},
		{
			name: "panic",
			sig:  "()Z",
			fn: func(*env.Env, types.Object) bool {
				panic("kaboom")
			},
			class: "java/lang/RuntimeException",
		},
		{
			name: "raw panic",
			sig:  "()J",
			fn: func(types.EnvPtr, types.Object) types.Jlong {
				panic("kaboom")
			},
			class: "java/lang/RuntimeException",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, e := newEnv(t)
			m := MustNewMethod(tt.sig, tt.fn, WithName(tt.name))
			defer m.Release()

			v, err := m.Call(e.Ptr(), types.Null, tt.args...)
			require.NoError(t, err)
			assert.Zero(t, v, "zero result after a failure")

			pending := j.Pending(e.Ptr())
			require.NotNil(t, pending)
			assert.Equal(t, tt.class, pending.Class.Name)
			if tt.message != "" {
				assert.Equal(t, tt.message, pending.Message)
			} else {
				assert.Contains(t, pending.Message, "kaboom")
			}
			e.ExceptionClear()
		})
	}
}

func TestCallKeepsPendingException(t *testing.T) {
	j, e := newEnv(t)
	m := MustNewMethod("()V", func(e *env.Env, _ types.Object) error {
		j.Throw(e.Ptr(), "java/lang/IllegalStateException", "first")
		return fmt.Errorf("second")
	}, WithName("twice"))

	_, err := m.Call(e.Ptr(), types.Null)
	require.NoError(t, err)
	pending := j.Pending(e.Ptr())
	require.NotNil(t, pending)
	assert.Equal(t, "java/lang/IllegalStateException", pending.Class.Name)
	assert.Equal(t, "first", pending.Message)
	e.ExceptionClear()
}

func TestCallUnknownEnv(t *testing.T) {
	j := jvmtest.New()
	ptr := j.Attach("native")
	shared := refs.NewLedger()

	var got *env.Env
	m := MustNewMethod("(II)I", func(e *env.Env, _ types.Object, a, b types.Jint) types.Jint {
		got = e
		return a + b
	}, WithName("add"), WithBinder(j), WithLedger(shared))
	defer m.Release()

	v, err := m.Call(ptr, types.Null, types.IntValue(1), types.IntValue(2))
	require.NoError(t, err)
	assert.Equal(t, types.Jint(3), v.Int())
	require.NotNil(t, got)
	assert.Same(t, shared, got.Ledger())

	_, ok := env.Lookup(ptr)
	assert.False(t, ok, "env of a VM-owned thread is not cached")
}

func TestCallUnknownEnvReleasesException(t *testing.T) {
	j := jvmtest.New()
	ptr := j.Attach("native")
	shared := refs.NewLedger()

	m := MustNewMethod("()Ljava/lang/Class;", func(e *env.Env, _ types.Object) (types.Class, error) {
		return e.FindClass("no/Such")
	}, WithName("find"), WithBinder(j), WithLedger(shared))
	defer m.Release()

	_, err := m.Call(ptr, types.Null)
	require.NoError(t, err)
	pending := j.Pending(ptr)
	require.NotNil(t, pending)
	assert.Equal(t, "java/lang/NoClassDefFoundError", pending.Class.Name)
	assert.Zero(t, shared.Live(types.GlobalRefType), "cached exception released when the call returns")
}
