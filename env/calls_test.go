package env

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/jni-runtime/errors"
	"github.com/wippyai/jni-runtime/internal/jvmtest"
	"github.com/wippyai/jni-runtime/native"
	"github.com/wippyai/jni-runtime/types"
)

func defineCalc(j *jvmtest.JVM) {
	j.DefineClass("demo/Calc", "java/lang/Object").
		StaticMethod("add", "(II)I", func(c *jvmtest.Call) types.Value {
			return types.IntValue(c.Args[0].Int() + c.Args[1].Int())
		}).
		StaticMethod("half", "(D)D", func(c *jvmtest.Call) types.Value {
			return types.DoubleValue(c.Args[0].Double() / 2)
		}).
		StaticMethod("isEven", "(J)Z", func(c *jvmtest.Call) types.Value {
			return types.BoolValue(c.Args[0].Long()%2 == 0)
		}).
		StaticMethod("fail", "()V", func(c *jvmtest.Call) types.Value {
			return c.Throw("java/lang/ArithmeticException", "/ by zero")
		}).
		Method("greet", "(Ljava/lang/String;)Ljava/lang/String;", func(c *jvmtest.Call) types.Value {
			return c.NewString("hi " + c.Arg(0).Text)
		}).
		Method("initial", "(Ljava/lang/String;)C", func(c *jvmtest.Call) types.Value {
			return types.CharValue(types.Jchar(c.Arg(0).Text[0]))
		})
}

func TestInvoke(t *testing.T) {
	j, e := newEnv(t)
	defineCalc(j)

	cls, err := e.FindClass("demo/Calc")
	require.NoError(t, err)

	t.Run("static int", func(t *testing.T) {
		add, err := e.LookupStaticMethod(cls, "add", "(II)I")
		require.NoError(t, err)
		assert.True(t, add.Static)

		v, err := e.Invoke(types.Null, add, types.IntValue(2), types.IntValue(40))
		require.NoError(t, err)
		assert.Equal(t, types.Jint(42), v.Int())
	})

	t.Run("static double and boolean", func(t *testing.T) {
		half, err := e.LookupStaticMethod(cls, "half", "(D)D")
		require.NoError(t, err)
		v, err := e.Invoke(types.Null, half, types.DoubleValue(5))
		require.NoError(t, err)
		assert.Equal(t, 2.5, v.Double())

		even, err := e.LookupStaticMethod(cls, "isEven", "(J)Z")
		require.NoError(t, err)
		v, err = e.Invoke(types.Null, even, types.LongValue(8))
		require.NoError(t, err)
		assert.True(t, v.Bool())
	})

	t.Run("virtual object", func(t *testing.T) {
		obj, err := e.AllocObject(cls)
		require.NoError(t, err)
		greet, err := e.LookupMethod(cls, "greet", "(Ljava/lang/String;)Ljava/lang/String;")
		require.NoError(t, err)
		arg, err := e.NewGoString("bob")
		require.NoError(t, err)

		v, err := e.Invoke(obj, greet, types.ObjectValue(arg))
		require.NoError(t, err)
		s, err := e.GoString(v.Object())
		require.NoError(t, err)
		assert.Equal(t, "hi bob", s)

		initial, err := e.LookupMethod(cls, "initial", "(Ljava/lang/String;)C")
		require.NoError(t, err)
		c, err := e.CallCharMethod(obj, initial.ID, types.ObjectValue(arg))
		require.NoError(t, err)
		assert.Equal(t, types.Jchar('b'), c)
	})

	t.Run("argument count", func(t *testing.T) {
		add, err := e.LookupStaticMethod(cls, "add", "(II)I")
		require.NoError(t, err)
		_, err = e.Invoke(types.Null, add, types.IntValue(1))
		assert.ErrorIs(t, err, &errors.Error{Kind: errors.KindInvalidInput})
	})

	t.Run("malformed signature", func(t *testing.T) {
		_, err := e.Invoke(types.Null, Method{Class: cls, Name: "bad", Signature: "(I"})
		assert.ErrorIs(t, err, errors.ErrInvalid)
	})

	t.Run("exception", func(t *testing.T) {
		fail, err := e.LookupStaticMethod(cls, "fail", "()V")
		require.NoError(t, err)
		_, err = e.Invoke(types.Null, fail)
		thr, ok := errors.AsThrowable(err)
		require.True(t, ok)
		assert.Equal(t, "CallStaticVoidMethod", thr.Op)

		name, msg, err := e.Describe(thr)
		require.NoError(t, err)
		assert.Equal(t, "java.lang.ArithmeticException", name)
		assert.Equal(t, "/ by zero", msg)
	})
}

func TestCallOnNull(t *testing.T) {
	j, e := newEnv(t)
	defineCalc(j)

	cls, err := e.FindClass("demo/Calc")
	require.NoError(t, err)
	greet, err := e.GetMethodID(cls, "greet", "(Ljava/lang/String;)Ljava/lang/String;")
	require.NoError(t, err)

	_, err = e.CallObjectMethod(types.Null, greet, types.ObjectValue(types.Null))
	thr, ok := errors.AsThrowable(err)
	require.True(t, ok)
	name, _, err := e.Describe(thr)
	require.NoError(t, err)
	assert.Equal(t, "java.lang.NullPointerException", name)
}

func TestStrings(t *testing.T) {
	j, e := newEnv(t)

	for _, in := range []string{"", "plain", "héllo, 世界", "emoji 🌍 and \x00 nul"} {
		s, err := e.NewGoString(in)
		require.NoError(t, err)
		out, err := e.GoString(s)
		require.NoError(t, err)
		assert.Equal(t, in, out)
		e.DeleteLocalRef(s)
	}

	s, err := e.NewStringUTF("modified")
	require.NoError(t, err)
	n, err := e.GetStringLength(s)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	utf, err := e.GetStringUTF(s)
	require.NoError(t, err)
	assert.Equal(t, "modified", utf)
	assert.Zero(t, j.Pinned(), "UTF chars released")

	buf := make([]types.Jchar, 3)
	require.NoError(t, e.GetStringRegion(s, 2, buf))
	assert.Equal(t, []types.Jchar{'d', 'i', 'f'}, buf)

	err = e.GetStringRegion(s, 7, buf)
	_, ok := errors.AsThrowable(err)
	assert.True(t, ok, "region out of bounds")

	out, err := e.GoString(types.Null)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestIntArrays(t *testing.T) {
	j, e := newEnv(t)

	arr, err := e.NewIntArray(4)
	require.NoError(t, err)
	n, err := e.GetArrayLength(arr)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	require.NoError(t, e.SetIntArrayRegion(arr, 1, []types.Jint{7, 8, 9}))
	got := make([]types.Jint, 4)
	require.NoError(t, e.GetIntArrayRegion(arr, 0, got))
	assert.Equal(t, []types.Jint{0, 7, 8, 9}, got)

	elems, isCopy, err := e.GetIntArrayElements(arr)
	require.NoError(t, err)
	assert.True(t, isCopy)
	require.Len(t, elems, 4)
	elems[0] = 100
	require.NoError(t, e.ReleaseIntArrayElements(arr, elems, types.CopyBack))
	assert.Zero(t, j.Pinned())

	require.NoError(t, e.GetIntArrayRegion(arr, 0, got[:1]))
	assert.Equal(t, types.Jint(100), got[0])

	elems, _, err = e.GetIntArrayElements(arr)
	require.NoError(t, err)
	elems[0] = -1
	require.NoError(t, e.ReleaseIntArrayElements(arr, elems, types.Abort))
	require.NoError(t, e.GetIntArrayRegion(arr, 0, got[:1]))
	assert.Equal(t, types.Jint(100), got[0], "abort discards changes")

	err = e.GetIntArrayRegion(arr, 3, got)
	_, ok := errors.AsThrowable(err)
	assert.True(t, ok, "region out of bounds")

	_, err = e.NewIntArray(-1)
	_, ok = errors.AsThrowable(err)
	assert.True(t, ok, "negative size")

	assert.NoError(t, e.GetIntArrayRegion(arr, 0, nil), "empty region is a no-op")
}

func cstr(s string) *byte {
	b := append([]byte(s), 0)
	return &b[0]
}

func TestRegisterNatives(t *testing.T) {
	j, e := newEnv(t)
	j.DefineClass("demo/Native", "java/lang/Object").
		Method("ping", "()I", nil)

	cls, err := e.FindClass("demo/Native")
	require.NoError(t, err)

	j.ResetCalls()
	methods := []native.NativeMethod{{Name: cstr("ping"), Signature: cstr("()I"), FnPtr: 0x1234}}
	require.NoError(t, e.RegisterNatives(cls, methods))

	calls := j.Calls()
	notify := slices.Index(calls, "GetMethodID:notify")
	register := slices.Index(calls, "RegisterNatives")
	require.GreaterOrEqual(t, notify, 0, "class resolved before registration")
	assert.Less(t, notify, register)

	natives := j.Natives("demo/Native")
	require.Len(t, natives, 1)
	assert.Equal(t, "ping", natives[0].Name)
	assert.Equal(t, "()I", natives[0].Signature)
	assert.Equal(t, uintptr(0x1234), natives[0].FnPtr)

	require.NoError(t, e.UnregisterNatives(cls))
	assert.Empty(t, j.Natives("demo/Native"))

	assert.NoError(t, e.RegisterNatives(cls, nil), "empty registration is a no-op")

	missing := []native.NativeMethod{{Name: cstr("nope"), Signature: cstr("()V"), FnPtr: 0x1}}
	err = e.RegisterNatives(cls, missing)
	thr, ok := errors.AsThrowable(err)
	require.True(t, ok)
	name, msg, err := e.Describe(thr)
	require.NoError(t, err)
	assert.Equal(t, "java.lang.NoSuchMethodError", name)
	assert.Equal(t, "nope", msg)
}

func TestRegisterNativesClearsLookupFailure(t *testing.T) {
	j := jvmtest.New()
	j.DefineClass("demo/Native", "java/lang/Object").Method("ping", "()I", nil)

	fns := *j.EnvFuncs()
	fns.GetMethodID = func(env types.EnvPtr, _ types.Class, name, _ string) types.MethodID {
		j.Throw(env, "java/lang/NoSuchMethodError", name)
		return 0
	}
	ptr := j.Attach("lookup")
	e := New(ptr, &fns)

	cls, err := e.FindClass("demo/Native")
	require.NoError(t, err)

	methods := []native.NativeMethod{{Name: cstr("ping"), Signature: cstr("()I"), FnPtr: 0x1}}
	require.NoError(t, e.RegisterNatives(cls, methods))
	assert.Nil(t, j.Pending(ptr))
	assert.Len(t, j.Natives("demo/Native"), 1)
}
