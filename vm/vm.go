package vm

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/jni-runtime/env"
	"github.com/wippyai/jni-runtime/errors"
	"github.com/wippyai/jni-runtime/native"
	"github.com/wippyai/jni-runtime/refs"
	"github.com/wippyai/jni-runtime/types"
)

// VM is a Java VM. Envs obtained through it share one reference ledger.
type VM struct {
	ptr     types.VMPtr
	fn      *native.VMFuncs
	binder  native.Binder
	ledger  *refs.Ledger
	version types.Version

	mu        sync.Mutex
	envs      map[types.EnvPtr]struct{}
	destroyed bool
}

func newVM(ptr types.VMPtr, fn *native.VMFuncs, b native.Binder, version types.Version) *VM {
	if version == 0 {
		version = types.Version1_8
	}
	return &VM{
		ptr:     ptr,
		fn:      fn,
		binder:  b,
		ledger:  refs.NewLedger(),
		version: version,
		envs:    make(map[types.EnvPtr]struct{}),
	}
}

// Ptr returns the raw JavaVM pointer.
func (v *VM) Ptr() types.VMPtr { return v.ptr }

// Ledger returns the reference ledger shared by the VM's Envs.
func (v *VM) Ledger() *refs.Ledger { return v.ledger }

// Version returns the JNI version used for attach and GetEnv.
func (v *VM) Version() types.Version { return v.version }

func (v *VM) env(ptr types.EnvPtr) (*env.Env, error) {
	e, err := env.FromPtr(ptr, v.binder, env.WithLedger(v.ledger))
	if err != nil {
		return nil, err
	}
	v.mu.Lock()
	v.envs[ptr] = struct{}{}
	v.mu.Unlock()
	return e, nil
}

func (v *VM) forget(ptr types.EnvPtr) {
	env.Forget(ptr)
	v.mu.Lock()
	delete(v.envs, ptr)
	v.mu.Unlock()
}

// Destroy unloads the VM and releases the thread lock taken by Create. It
// must run on the goroutine that created the VM. Destroying twice is a no-op.
func (v *VM) Destroy() error {
	v.mu.Lock()
	if v.destroyed {
		v.mu.Unlock()
		return nil
	}
	v.mu.Unlock()

	if rc := v.fn.DestroyJavaVM(v.ptr); rc != 0 {
		return errors.Status(types.Status(rc), "DestroyJavaVM")
	}

	v.mu.Lock()
	v.destroyed = true
	ptrs := make([]types.EnvPtr, 0, len(v.envs))
	for ptr := range v.envs {
		ptrs = append(ptrs, ptr)
	}
	v.envs = make(map[types.EnvPtr]struct{})
	v.mu.Unlock()

	for _, ptr := range ptrs {
		env.Forget(ptr)
	}
	cache.Delete(v.ptr)
	runtime.UnlockOSThread()

	Logger().Debug("destroyed VM", zap.Uintptr("vm", uintptr(v.ptr)))
	return nil
}

// Attach attaches the calling thread, or DefaultConfig's version with no name
// when cfg is nil. The goroutine stays locked to its OS thread until Detach.
func (v *VM) Attach(cfg *AttachConfig) (*env.Env, error) {
	return v.attach("AttachCurrentThread", v.fn.AttachCurrentThread, cfg)
}

// AttachDaemon is Attach for a daemon thread, which does not keep the VM
// alive at shutdown.
func (v *VM) AttachDaemon(cfg *AttachConfig) (*env.Env, error) {
	return v.attach("AttachCurrentThreadAsDaemon", v.fn.AttachCurrentThreadAsDaemon, cfg)
}

type attachFunc func(vm types.VMPtr, penv *types.EnvPtr, args *native.AttachArgs) types.Jint

func (v *VM) attach(op string, fn attachFunc, cfg *AttachConfig) (*env.Env, error) {
	if cfg == nil {
		cfg = &AttachConfig{}
	}
	version := cfg.Version
	if version == 0 {
		version = v.version
	}
	args := native.AttachArgs{Version: types.Jint(version), Group: cfg.Group}

	var pinner runtime.Pinner
	defer pinner.Unpin()
	if cfg.Name != "" {
		name := append([]byte(cfg.Name), 0)
		pinner.Pin(&name[0])
		args.Name = &name[0]
	}

	runtime.LockOSThread()
	var ptr types.EnvPtr
	if rc := fn(v.ptr, &ptr, &args); rc != 0 {
		runtime.UnlockOSThread()
		return nil, errors.Status(types.Status(rc), op)
	}
	e, err := v.env(ptr)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}

	Logger().Debug("attached thread",
		zap.String("op", op),
		zap.String("name", cfg.Name),
		zap.Uintptr("env", uintptr(ptr)))
	return e, nil
}

// Detach detaches the calling thread, forgets its Env and releases the thread
// lock taken by Attach.
func (v *VM) Detach() error {
	var ptr types.EnvPtr
	if v.fn.GetEnv(v.ptr, &ptr, types.Jint(v.version)) != 0 {
		ptr = 0
	}
	if rc := v.fn.DetachCurrentThread(v.ptr); rc != 0 {
		return errors.Status(types.Status(rc), "DetachCurrentThread")
	}
	if ptr != 0 {
		v.forget(ptr)
	}
	runtime.UnlockOSThread()

	Logger().Debug("detached thread", zap.Uintptr("env", uintptr(ptr)))
	return nil
}

// GetEnv returns the Env of the calling thread. A detached thread yields
// EDETACHED and an unsupported version EVERSION.
func (v *VM) GetEnv(version types.Version) (*env.Env, error) {
	var ptr types.EnvPtr
	if rc := v.fn.GetEnv(v.ptr, &ptr, types.Jint(version)); rc != 0 {
		return nil, errors.Status(types.Status(rc), "GetEnv")
	}
	return v.env(ptr)
}

// IsAttached reports whether the calling thread is attached.
func (v *VM) IsAttached() bool {
	var ptr types.EnvPtr
	return v.fn.GetEnv(v.ptr, &ptr, types.Jint(v.version)) == 0 && ptr != 0
}

// Do runs fn with the Env of the calling thread, attaching it for the duration
// of the call when it is not attached yet.
func (v *VM) Do(fn func(e *env.Env) error) (err error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	e, err := v.GetEnv(v.version)
	if err == nil {
		return fn(e)
	}
	if s, ok := errors.AsStatus(err); !ok || s.Code != types.EDETACHED {
		return err
	}

	e, err = v.Attach(nil)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, v.Detach())
	}()
	return fn(e)
}

// Go runs fn on n goroutines, each on its own OS thread with an attached Env.
// The first error cancels ctx for the others.
func (v *VM) Go(ctx context.Context, n int, fn func(ctx context.Context, i int, e *env.Env) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := range n {
		g.Go(func() error {
			return v.Do(func(e *env.Env) error {
				return fn(ctx, i, e)
			})
		})
	}
	return g.Wait()
}
