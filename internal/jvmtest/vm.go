package jvmtest

import (
	"unsafe"

	"github.com/wippyai/jni-runtime/native"
	"github.com/wippyai/jni-runtime/types"
)

func (j *JVM) vmTable() *native.VMFuncs {
	fn := &native.VMFuncs{}

	fn.DestroyJavaVM = func(vm types.VMPtr) types.Jint {
		j.record("DestroyJavaVM")
		if rc, ok := j.failed(0, "DestroyJavaVM"); ok {
			return rc
		}
		j.mu.Lock()
		defer j.mu.Unlock()
		if !j.created {
			return types.Jint(types.ERR)
		}
		j.created = false
		return 0
	}
	attach := func(slot string, daemon bool) func(types.VMPtr, *types.EnvPtr, *native.AttachArgs) types.Jint {
		return func(vm types.VMPtr, penv *types.EnvPtr, args *native.AttachArgs) types.Jint {
			j.record(slot)
			if rc, ok := j.failed(0, slot); ok {
				return rc
			}
			name := ""
			if args != nil {
				if !types.Version(args.Version).AtLeast(types.Version1_2) || !j.version.AtLeast(types.Version(args.Version)) {
					return types.Jint(types.EVERSION)
				}
				name = CString(args.Name)
			}
			j.mu.Lock()
			defer j.mu.Unlock()
			*penv = j.attachLocked(name, daemon)
			return 0
		}
	}
	fn.AttachCurrentThread = attach("AttachCurrentThread", false)
	fn.AttachCurrentThreadAsDaemon = attach("AttachCurrentThreadAsDaemon", true)
	fn.DetachCurrentThread = func(vm types.VMPtr) types.Jint {
		j.record("DetachCurrentThread")
		j.mu.Lock()
		defer j.mu.Unlock()
		if j.current == 0 {
			return types.Jint(types.EDETACHED)
		}
		delete(j.threads, j.current)
		j.current = 0
		for env := range j.threads {
			j.current = env
			break
		}
		return 0
	}
	fn.GetEnv = func(vm types.VMPtr, penv *types.EnvPtr, version types.Jint) types.Jint {
		j.record("GetEnv")
		j.mu.Lock()
		defer j.mu.Unlock()
		if !j.version.AtLeast(types.Version(version)) {
			*penv = 0
			return types.Jint(types.EVERSION)
		}
		*penv = j.current
		if j.current == 0 {
			return types.Jint(types.EDETACHED)
		}
		return 0
	}
	return fn
}

func (j *JVM) libTable() *native.LibFuncs {
	fn := &native.LibFuncs{}

	fn.GetDefaultJavaVMInitArgs = func(args *native.InitArgs) types.Jint {
		j.record("JNI_GetDefaultJavaVMInitArgs")
		if !j.version.AtLeast(types.Version(args.Version)) {
			return types.Jint(types.EVERSION)
		}
		return 0
	}
	fn.CreateJavaVM = func(pvm *types.VMPtr, penv *types.EnvPtr, args *native.InitArgs) types.Jint {
		j.record("JNI_CreateJavaVM")
		if rc, ok := j.failed(0, "JNI_CreateJavaVM"); ok {
			return rc
		}
		j.mu.Lock()
		defer j.mu.Unlock()
		if j.created {
			return types.Jint(types.EEXIST)
		}
		if args == nil || !j.version.AtLeast(types.Version(args.Version)) {
			return types.Jint(types.EVERSION)
		}
		j.options = j.options[:0]
		if args.NOptions > 0 {
			for _, opt := range unsafe.Slice(args.Options, args.NOptions) {
				j.options = append(j.options, CString(opt.OptionString))
			}
		}
		if j.nullCreate {
			return 0
		}
		j.created = true
		*pvm = j.vm
		*penv = j.attachLocked("main", false)
		return 0
	}
	fn.GetCreatedJavaVMs = func(buf *types.VMPtr, bufLen types.Jsize, n *types.Jsize) types.Jint {
		j.record("JNI_GetCreatedJavaVMs")
		if rc, ok := j.failed(0, "JNI_GetCreatedJavaVMs"); ok {
			return rc
		}
		j.mu.Lock()
		defer j.mu.Unlock()
		count := types.Jsize(0)
		if j.created {
			count = 1
		}
		*n = count
		if buf != nil && bufLen > 0 && count > 0 {
			*buf = j.vm
		}
		return 0
	}
	return fn
}

// CreateReturnsNull makes CreateJavaVM succeed without producing a VM.
func (j *JVM) CreateReturnsNull() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.nullCreate = true
}

// Current returns the env GetEnv reports, or 0 when detached.
func (j *JVM) Current() types.EnvPtr {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.current
}

// SetCurrent selects the thread GetEnv reports.
func (j *JVM) SetCurrent(env types.EnvPtr) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.current = env
}

func (j *JVM) record(slot string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = append(j.calls, slot)
}
