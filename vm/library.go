package vm

import (
	"runtime"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/jni-runtime/env"
	"github.com/wippyai/jni-runtime/errors"
	"github.com/wippyai/jni-runtime/native"
	"github.com/wippyai/jni-runtime/types"
)

// Library is a JVM library whose bootstrap functions are bound.
type Library struct {
	fn     *native.LibFuncs
	binder native.Binder
	dl     *native.Library

	mu  sync.Mutex
	vms []*VM
}

// LibraryOption configures a Library.
type LibraryOption func(*Library)

// WithBinder sets how JNIEnv and JavaVM tables are bound. The default binds
// through purego.
func WithBinder(b native.Binder) LibraryOption {
	return func(l *Library) {
		if b != nil {
			l.binder = b
		}
	}
}

// Open loads the JVM library at path.
func Open(path string, opts ...LibraryOption) (*Library, error) {
	dl, err := native.Open(path)
	if err != nil {
		return nil, err
	}
	l := NewLibrary(&dl.Funcs, opts...)
	l.dl = dl
	return l, nil
}

// NewLibrary wraps already bound bootstrap functions.
func NewLibrary(fn *native.LibFuncs, opts ...LibraryOption) *Library {
	l := &Library{fn: fn, binder: native.Purego}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the path the library was opened from, or "" when wrapped.
func (l *Library) Path() string {
	if l.dl == nil {
		return ""
	}
	return l.dl.Path
}

// DefaultInitArgs asks the VM for its default initialization arguments.
func (l *Library) DefaultInitArgs(version types.Version) (native.InitArgs, error) {
	args := native.InitArgs{Version: types.Jint(version)}
	if rc := l.fn.GetDefaultJavaVMInitArgs(&args); rc != 0 {
		return native.InitArgs{}, errors.Status(types.Status(rc), "JNI_GetDefaultJavaVMInitArgs")
	}
	return args, nil
}

// Create starts a VM with cfg, or DefaultConfig when nil, and returns it with
// the Env of the calling thread. On success the calling goroutine stays locked
// to its OS thread until Destroy. On failure no handles are returned.
func (l *Library) Create(cfg *Config) (*VM, *env.Env, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var pinner runtime.Pinner
	defer pinner.Unpin()

	opts := make([]native.VMOption, len(cfg.Options))
	for i, o := range cfg.Options {
		if strings.IndexByte(o, 0) >= 0 {
			return nil, nil, errors.New(errors.PhaseBootstrap, errors.KindInvalidInput).
				Op("JNI_CreateJavaVM").
				Detail("option %d contains a NUL byte", i).
				Build()
		}
		buf := append([]byte(o), 0)
		pinner.Pin(&buf[0])
		opts[i].OptionString = &buf[0]
	}
	args := native.InitArgs{
		Version:            types.Jint(cfg.Version),
		NOptions:           types.Jint(len(opts)),
		IgnoreUnrecognized: types.Bool(cfg.IgnoreUnrecognized),
	}
	if len(opts) > 0 {
		pinner.Pin(&opts[0])
		args.Options = &opts[0]
	}

	runtime.LockOSThread()
	var (
		vmPtr  types.VMPtr
		envPtr types.EnvPtr
	)
	if rc := l.fn.CreateJavaVM(&vmPtr, &envPtr, &args); rc != 0 {
		runtime.UnlockOSThread()
		return nil, nil, errors.Status(types.Status(rc), "JNI_CreateJavaVM")
	}
	if vmPtr == 0 || envPtr == 0 {
		runtime.UnlockOSThread()
		return nil, nil, errors.Statusf(types.ERR, "JNI_CreateJavaVM", "null VM handle")
	}

	vm, err := l.wrap(vmPtr, cfg.Version)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, nil, err
	}
	e, err := vm.env(envPtr)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, nil, err
	}

	l.mu.Lock()
	l.vms = append(l.vms, vm)
	l.mu.Unlock()

	Logger().Debug("created VM",
		zap.Uintptr("vm", uintptr(vmPtr)),
		zap.Stringer("version", cfg.Version),
		zap.Strings("options", cfg.Options))
	return vm, e, nil
}

// Created returns the VMs created in this process.
func (l *Library) Created() ([]*VM, error) {
	var n types.Jsize
	if rc := l.fn.GetCreatedJavaVMs(nil, 0, &n); rc != 0 {
		return nil, errors.Status(types.Status(rc), "JNI_GetCreatedJavaVMs")
	}
	if n <= 0 {
		return nil, nil
	}

	buf := make([]types.VMPtr, n)
	if rc := l.fn.GetCreatedJavaVMs(&buf[0], n, &n); rc != 0 {
		return nil, errors.Status(types.Status(rc), "JNI_GetCreatedJavaVMs")
	}
	buf = buf[:min(int(n), len(buf))]

	vms := make([]*VM, 0, len(buf))
	for _, ptr := range buf {
		vm, err := l.wrap(ptr, types.Version1_8)
		if err != nil {
			return nil, err
		}
		vms = append(vms, vm)
	}
	return vms, nil
}

// Close destroys the VMs created through l and unloads the library.
func (l *Library) Close() error {
	l.mu.Lock()
	vms := l.vms
	l.vms = nil
	l.mu.Unlock()

	var err error
	for _, vm := range vms {
		err = multierr.Append(err, vm.Destroy())
	}
	if l.dl != nil {
		err = multierr.Append(err, l.dl.Close())
	}
	return err
}

// VMs by pointer, so every lookup of one VM shares its ledger.
var cache sync.Map // types.VMPtr -> *VM

func (l *Library) wrap(ptr types.VMPtr, version types.Version) (*VM, error) {
	if cached, ok := cache.Load(ptr); ok {
		return cached.(*VM), nil
	}
	fn, err := l.binder.BindVM(ptr)
	if err != nil {
		return nil, err
	}
	actual, _ := cache.LoadOrStore(ptr, newVM(ptr, fn, l.binder, version))
	return actual.(*VM), nil
}
