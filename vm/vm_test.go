package vm

import (
	"context"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/jni-runtime/env"
	"github.com/wippyai/jni-runtime/errors"
	"github.com/wippyai/jni-runtime/internal/jvmtest"
	"github.com/wippyai/jni-runtime/types"
)

func newLibrary(opts ...jvmtest.Option) (*jvmtest.JVM, *Library) {
	j := jvmtest.New(opts...)
	return j, NewLibrary(j.LibFuncs(), WithBinder(j))
}

func create(t *testing.T, cfg *Config) (*jvmtest.JVM, *Library, *VM, *env.Env) {
	t.Helper()
	j, l := newLibrary()
	machine, e, err := l.Create(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, l.Close())
		assert.Empty(t, j.Violations(), "calls issued with an exception pending")
	})
	return j, l, machine, e
}

func TestCreate(t *testing.T) {
	j, l, machine, e := create(t, &Config{
		Version: types.Version1_8,
		Options: []string{"-Xms16M", "-Xmx512M"},
	})

	assert.True(t, j.Created())
	assert.Equal(t, []string{"-Xms16M", "-Xmx512M"}, j.Options())
	assert.Equal(t, j.VMPtr(), machine.Ptr())
	assert.Equal(t, types.Version1_8, machine.Version())
	assert.Empty(t, l.Path())

	cls, err := e.FindClass("java/lang/Object")
	require.NoError(t, err)
	assert.NotZero(t, cls)

	_, err = e.FindClass("does/not/Exist")
	thr, ok := errors.AsThrowable(err)
	require.True(t, ok)
	name, msg, err := e.Describe(thr)
	require.NoError(t, err)
	assert.Equal(t, "java.lang.NoClassDefFoundError", name)
	assert.Equal(t, "does/not/Exist", msg)

	_, err = e.GetMethodID(cls, "bogus", "()V")
	_, ok = errors.AsThrowable(err)
	assert.True(t, ok)

	mid, err := e.GetMethodID(cls, "hashCode", "()I")
	require.NoError(t, err, "class stays usable after failed lookups")
	assert.NotZero(t, mid)
}

func TestCreateDefaults(t *testing.T) {
	j, _, machine, _ := create(t, nil)
	assert.Empty(t, j.Options())
	assert.Equal(t, types.Version1_8, machine.Version())
}

func TestCreateFailures(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		j, l := newLibrary()
		j.Fail("JNI_CreateJavaVM", types.Jint(types.ENOMEM), "")
		machine, e, err := l.Create(nil)
		assert.ErrorIs(t, err, errors.ErrNoMemory)
		assert.Nil(t, machine)
		assert.Nil(t, e)
	})

	t.Run("null handle", func(t *testing.T) {
		j, l := newLibrary()
		j.CreateReturnsNull()
		_, _, err := l.Create(nil)
		s, ok := errors.AsStatus(err)
		require.True(t, ok)
		assert.Equal(t, types.ERR, s.Code)
		assert.Equal(t, "JNI_CreateJavaVM", s.Op)
	})

	t.Run("twice", func(t *testing.T) {
		_, l, _, _ := create(t, nil)
		_, _, err := l.Create(nil)
		assert.ErrorIs(t, err, errors.ErrExists)
	})

	t.Run("version", func(t *testing.T) {
		_, l := newLibrary(jvmtest.WithVersion(types.Version1_8))
		_, _, err := l.Create(&Config{Version: types.Version21})
		assert.ErrorIs(t, err, errors.ErrVersion)
	})

	t.Run("nul in option", func(t *testing.T) {
		j, l := newLibrary()
		_, _, err := l.Create(&Config{Version: types.Version1_8, Options: []string{"-Dx=\x00"}})
		assert.ErrorIs(t, err, &errors.Error{Kind: errors.KindInvalidInput})
		assert.False(t, j.Created())
	})
}

func TestCreated(t *testing.T) {
	j, l := newLibrary()

	vms, err := l.Created()
	require.NoError(t, err)
	assert.Empty(t, vms)

	machine, _, err := l.Create(nil)
	require.NoError(t, err)
	defer l.Close()

	j.ResetCalls()
	vms, err = l.Created()
	require.NoError(t, err)
	require.Len(t, vms, 1)
	assert.Same(t, machine, vms[0])

	n := 0
	for _, c := range j.Calls() {
		if c == "JNI_GetCreatedJavaVMs" {
			n++
		}
	}
	assert.Equal(t, 2, n, "count first, then fill")

	j.Fail("JNI_GetCreatedJavaVMs", types.Jint(types.ERR), "")
	_, err = l.Created()
	assert.Error(t, err)
}

func TestDefaultInitArgs(t *testing.T) {
	_, l := newLibrary(jvmtest.WithVersion(types.Version1_8))

	args, err := l.DefaultInitArgs(types.Version1_8)
	require.NoError(t, err)
	assert.Equal(t, types.Jint(types.Version1_8), args.Version)

	_, err = l.DefaultInitArgs(types.Version9)
	assert.ErrorIs(t, err, errors.ErrVersion)
}

func TestAttachDetach(t *testing.T) {
	j, _, machine, _ := create(t, nil)

	e, err := machine.Attach(&AttachConfig{Name: "worker"})
	require.NoError(t, err)
	assert.Contains(t, j.Threads(), "worker")
	assert.False(t, j.IsDaemon(e.Ptr()))
	assert.Same(t, machine.Ledger(), e.Ledger())
	assert.True(t, machine.IsAttached())

	got, err := machine.GetEnv(types.Version1_8)
	require.NoError(t, err)
	assert.Same(t, e, got)

	require.NoError(t, machine.Detach())
	assert.NotContains(t, j.Threads(), "worker")
	_, ok := env.Lookup(e.Ptr())
	assert.False(t, ok, "detached env forgotten")

	d, err := machine.AttachDaemon(&AttachConfig{Name: "reaper"})
	require.NoError(t, err)
	assert.True(t, j.IsDaemon(d.Ptr()))
	require.NoError(t, machine.Detach())

	_, err = machine.Attach(&AttachConfig{Version: types.Version1_1})
	assert.ErrorIs(t, err, errors.ErrVersion)
}

func TestDetached(t *testing.T) {
	j, _, machine, _ := create(t, nil)

	main := j.Current()
	j.SetCurrent(0)
	defer j.SetCurrent(main)

	assert.False(t, machine.IsAttached())
	_, err := machine.GetEnv(types.Version1_8)
	assert.ErrorIs(t, err, errors.ErrDetached)
	err = machine.Detach()
	assert.ErrorIs(t, err, errors.ErrDetached)

	_, err = machine.GetEnv(types.Version(0x00160000))
	assert.ErrorIs(t, err, errors.ErrVersion)
}

func TestDo(t *testing.T) {
	t.Run("reuses attached env", func(t *testing.T) {
		j, _, machine, main := create(t, nil)
		j.ResetCalls()

		err := machine.Do(func(e *env.Env) error {
			assert.Same(t, main, e)
			return nil
		})
		require.NoError(t, err)
		assert.NotContains(t, j.Calls(), "AttachCurrentThread")
	})

	t.Run("attaches when detached", func(t *testing.T) {
		j, _, machine, _ := create(t, nil)
		main := j.Current()
		j.SetCurrent(0)
		j.ResetCalls()

		var attached types.EnvPtr
		err := machine.Do(func(e *env.Env) error {
			attached = e.Ptr()
			assert.NotEqual(t, main, attached)
			return nil
		})
		require.NoError(t, err)
		calls := j.Calls()
		assert.Contains(t, calls, "AttachCurrentThread")
		assert.Contains(t, calls, "DetachCurrentThread")
		assert.Len(t, j.Threads(), 1)
		_, ok := env.Lookup(attached)
		assert.False(t, ok)
	})

	t.Run("returns fn error", func(t *testing.T) {
		j, _, machine, _ := create(t, nil)
		j.SetCurrent(0)

		boom := errors.InvalidInput(errors.PhaseInvoke, "boom")
		err := machine.Do(func(*env.Env) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.Len(t, j.Threads(), 1, "detached despite the error")
	})
}

func TestGo(t *testing.T) {
	_, _, machine, _ := create(t, nil)

	var count atomic.Int32
	seen := make([]bool, 8)
	err := machine.Go(context.Background(), len(seen), func(ctx context.Context, i int, e *env.Env) error {
		if _, err := e.FindClass("java/lang/Object"); err != nil {
			return err
		}
		seen[i] = true
		count.Add(1)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(8), count.Load())
	assert.False(t, slices.Contains(seen, false))

	boom := errors.InvalidInput(errors.PhaseInvoke, "boom")
	err = machine.Go(context.Background(), 3, func(ctx context.Context, i int, e *env.Env) error {
		if i == 1 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestDestroy(t *testing.T) {
	j, l := newLibrary()
	machine, e, err := l.Create(nil)
	require.NoError(t, err)

	j.Fail("DestroyJavaVM", types.Jint(types.ERR), "")
	err = machine.Destroy()
	s, ok := errors.AsStatus(err)
	require.True(t, ok)
	assert.Equal(t, "DestroyJavaVM", s.Op)
	assert.True(t, j.Created())

	require.NoError(t, machine.Destroy())
	assert.False(t, j.Created())
	_, ok = env.Lookup(e.Ptr())
	assert.False(t, ok)

	require.NoError(t, machine.Destroy(), "second destroy is a no-op")
	require.NoError(t, l.Close(), "close skips destroyed VMs")
}

func TestSharedLedger(t *testing.T) {
	j, _, machine, main := create(t, nil)

	worker, err := machine.Attach(&AttachConfig{Name: "worker"})
	require.NoError(t, err)
	defer machine.Detach()

	assert.Same(t, main.Ledger(), worker.Ledger())

	cls, err := main.FindClass("java/lang/Object")
	require.NoError(t, err)
	g, err := main.NewGlobalRef(cls)
	require.NoError(t, err)
	assert.Equal(t, 1, machine.Ledger().Live(types.GlobalRefType))

	worker.DeleteGlobalRef(g)
	assert.True(t, machine.Ledger().IsReleased(g, types.GlobalRefType))
	assert.Zero(t, machine.Ledger().Live(types.GlobalRefType))

	worker.DeleteGlobalRef(g)
	main.DeleteGlobalRef(g)
	assert.Zero(t, j.DoubleFrees(), "a ref deleted through one env is not deleted again through another")
}
