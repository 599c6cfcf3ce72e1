package callback

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/jni-runtime/env"
	"github.com/wippyai/jni-runtime/errors"
	"github.com/wippyai/jni-runtime/internal/jvmtest"
	"github.com/wippyai/jni-runtime/types"
)

func defineNative(j *jvmtest.JVM) {
	j.DefineClass("demo/Native", "java/lang/Object").
		StaticMethod("add", "(II)I", nil).
		StaticMethod("fail", "()V", nil).
		Method("label", "(Z)Ljava/lang/String;", nil)
}

func TestRegistryRoundTrip(t *testing.T) {
	j, e := newEnv(t)
	defineNative(j)
	cls, err := e.FindClass("demo/Native")
	require.NoError(t, err)

	sum := MustNewMethod("(II)I", add)
	fail := MustNewMethod("()V", func(*env.Env, types.Object) error {
		return fmt.Errorf("refused")
	}, WithName("fail"))
	label := MustNewMethod("(Z)Ljava/lang/String;", func(e *env.Env, this types.Object, on bool) (types.String, error) {
		if on {
			return e.NewGoString("on")
		}
		return e.NewGoString("off")
	}, WithName("label"))

	reg := NewRegistry()
	require.NoError(t, reg.Register(e, cls, sum, fail, label))
	for _, m := range []*Method{sum, fail, label} {
		link(j, m)
	}
	assert.Equal(t, 3, reg.Len())
	assert.Len(t, j.Natives("demo/Native"), 3)

	t.Run("static", func(t *testing.T) {
		m, err := e.LookupStaticMethod(cls, "add", "(II)I")
		require.NoError(t, err)
		v, err := e.Invoke(types.Null, m, types.IntValue(20), types.IntValue(22))
		require.NoError(t, err)
		assert.Equal(t, types.Jint(42), v.Int())
	})

	t.Run("instance", func(t *testing.T) {
		obj, err := e.AllocObject(cls)
		require.NoError(t, err)
		m, err := e.LookupMethod(cls, "label", "(Z)Ljava/lang/String;")
		require.NoError(t, err)
		v, err := e.Invoke(obj, m, types.BoolValue(true))
		require.NoError(t, err)
		s, err := e.GoString(v.Object())
		require.NoError(t, err)
		assert.Equal(t, "on", s)
	})

	t.Run("error surfaces as exception", func(t *testing.T) {
		m, err := e.LookupStaticMethod(cls, "fail", "()V")
		require.NoError(t, err)
		_, err = e.Invoke(types.Null, m)
		thr, ok := errors.AsThrowable(err)
		require.True(t, ok)
		name, msg, err := e.Describe(thr)
		require.NoError(t, err)
		assert.Equal(t, "java.lang.RuntimeException", name)
		assert.Equal(t, "refused", msg)
	})

	require.NoError(t, reg.Unregister(e, cls))
	assert.Zero(t, reg.Len())
	assert.Empty(t, j.Natives("demo/Native"))

	m, err := e.LookupStaticMethod(cls, "add", "(II)I")
	require.NoError(t, err)
	_, err = e.Invoke(types.Null, m, types.IntValue(1), types.IntValue(1))
	thr, ok := errors.AsThrowable(err)
	require.True(t, ok)
	name, _, err := e.Describe(thr)
	require.NoError(t, err)
	assert.Equal(t, "java.lang.UnsatisfiedLinkError", name)
}

func TestRegistryHoldsOneClassRef(t *testing.T) {
	j, e := newEnv(t)
	defineNative(j)
	cls, err := e.FindClass("demo/Native")
	require.NoError(t, err)

	reg := NewRegistry()
	require.NoError(t, reg.Register(e, cls, MustNewMethod("(II)I", add)))

	again, err := e.FindClass("demo/Native")
	require.NoError(t, err)
	require.NoError(t, reg.Register(e, again, MustNewMethod("()V", func(*env.Env, types.Object) {}, WithName("fail"))))

	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, 1, e.Ledger().Live(types.GlobalRefType))

	require.NoError(t, reg.Unregister(e, again))
	assert.Zero(t, e.Ledger().Live(types.GlobalRefType))
	assert.Zero(t, j.DoubleFrees())
}

func TestRegistryErrors(t *testing.T) {
	j, e := newEnv(t)
	defineNative(j)
	cls, err := e.FindClass("demo/Native")
	require.NoError(t, err)

	reg := NewRegistry()
	assert.NoError(t, reg.Register(e, cls), "nothing to register")

	missing := MustNewMethod("()V", func(*env.Env, types.Object) {}, WithName("missing"))
	err = reg.Register(e, cls, missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseRegister, Kind: errors.KindRegistration})
	assert.Contains(t, err.Error(), "demo.Native.missing")
	_, ok := errors.AsThrowable(err)
	assert.True(t, ok, "cause is the NoSuchMethodError")
	assert.Zero(t, reg.Len())

	require.NoError(t, reg.Register(e, cls, MustNewMethod("(II)I", add)))
	j.Fail("UnregisterNatives", types.Jint(types.ERR), "")
	err = reg.Unregister(e, cls)
	s, ok := errors.AsStatus(err)
	require.True(t, ok)
	assert.Equal(t, "UnregisterNatives", s.Op)
	assert.Equal(t, 1, reg.Len(), "kept after a failed unregister")
}

func TestRegistryReleasesOnFailure(t *testing.T) {
	j, e := newEnv(t)
	defineNative(j)
	cls, err := e.FindClass("demo/Native")
	require.NoError(t, err)
	reg := NewRegistry()

	t.Run("register natives", func(t *testing.T) {
		missing := MustNewMethod("()V", func(*env.Env, types.Object) {}, WithName("missing"))
		require.Error(t, reg.Register(e, cls, missing))
		assert.False(t, missing.isPinned())

		require.Error(t, reg.Register(e, cls, MustNewMethod("()V", func(*env.Env, types.Object) {}, WithName("missing"))))
		runtime.GC()
		runtime.GC()
	})

	t.Run("class reference", func(t *testing.T) {
		sum := MustNewMethod("(II)I", add)
		j.Fail("NewGlobalRef", 0, "java/lang/OutOfMemoryError")
		err := reg.Register(e, cls, sum)
		_, ok := errors.AsThrowable(err)
		require.True(t, ok, "got %v", err)
		assert.False(t, sum.isPinned())
		assert.Empty(t, j.Natives("demo/Native"), "natives rolled back")
		assert.Zero(t, reg.Len())
		runtime.GC()
	})
}

func TestRegistryLedger(t *testing.T) {
	j, e := newEnv(t)
	defineNative(j)
	cls, err := e.FindClass("demo/Native")
	require.NoError(t, err)

	sum := MustNewMethod("(II)I", add)
	reg := NewRegistry()
	require.NoError(t, reg.Register(e, cls, sum))
	defer reg.Close(e)
	assert.Same(t, e.Ledger(), sum.h.ledger, "methods adopt the ledger of the registering env")
}

func TestRegistryClose(t *testing.T) {
	j, e := newEnv(t)
	defineNative(j)
	j.DefineClass("demo/Other", "java/lang/Object").StaticMethod("add", "(II)I", nil)

	reg := NewRegistry()
	for _, name := range []string{"demo/Native", "demo/Other"} {
		cls, err := e.FindClass(name)
		require.NoError(t, err)
		require.NoError(t, reg.Register(e, cls, MustNewMethod("(II)I", add)))
	}
	assert.Equal(t, 2, reg.Len())

	j.Fail("UnregisterNatives", types.Jint(types.ERR), "")
	err := reg.Close(e)
	assert.Error(t, err)
	assert.Zero(t, reg.Len())
	assert.Zero(t, e.Ledger().Live(types.GlobalRefType))
	assert.Empty(t, j.Natives("demo/Other"))
}
