package native

import "github.com/wippyai/jni-runtime/types"

// VMFuncs mirrors JNIInvokeInterface_.
type VMFuncs struct {
	Reserved0 uintptr
	Reserved1 uintptr
	Reserved2 uintptr

	DestroyJavaVM               func(vm types.VMPtr) types.Jint
	AttachCurrentThread         func(vm types.VMPtr, penv *types.EnvPtr, args *AttachArgs) types.Jint
	DetachCurrentThread         func(vm types.VMPtr) types.Jint
	GetEnv                      func(vm types.VMPtr, penv *types.EnvPtr, version types.Jint) types.Jint
	AttachCurrentThreadAsDaemon func(vm types.VMPtr, penv *types.EnvPtr, args *AttachArgs) types.Jint
}

// LibFuncs holds the three symbols exported by the JVM library.
type LibFuncs struct {
	GetDefaultJavaVMInitArgs func(args *InitArgs) types.Jint
	CreateJavaVM             func(pvm *types.VMPtr, penv *types.EnvPtr, args *InitArgs) types.Jint
	GetCreatedJavaVMs        func(buf *types.VMPtr, bufLen types.Jsize, n *types.Jsize) types.Jint
}

// Exported symbol names, in LibFuncs field order.
var libSymbols = [...]string{
	"JNI_GetDefaultJavaVMInitArgs",
	"JNI_CreateJavaVM",
	"JNI_GetCreatedJavaVMs",
}

// VMOption mirrors JavaVMOption.
type VMOption struct {
	OptionString *byte
	ExtraInfo    uintptr
}

// InitArgs mirrors JavaVMInitArgs.
type InitArgs struct {
	Version            types.Jint
	NOptions           types.Jint
	Options            *VMOption
	IgnoreUnrecognized types.Jboolean
}

// AttachArgs mirrors JavaVMAttachArgs.
type AttachArgs struct {
	Version types.Jint
	Name    *byte
	Group   types.Object
}

// NativeMethod mirrors JNINativeMethod. The registration call keeps the
// pointers, so the backing buffers must outlive the registration.
type NativeMethod struct {
	Name      *byte
	Signature *byte
	FnPtr     uintptr
}
