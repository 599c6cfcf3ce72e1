package env

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/jni-runtime/errors"
	"github.com/wippyai/jni-runtime/native"
	"github.com/wippyai/jni-runtime/types"
)

// RegisterNatives binds methods to native implementations on cls. The VM keeps
// the name and signature pointers, so their buffers must stay alive until
// UnregisterNatives.
func (e *Env) RegisterNatives(cls types.Class, methods []native.NativeMethod) error {
	if len(methods) == 0 {
		return nil
	}

	// Some JVMs fail registration on a class until a method of it has been
	// resolved (JDK-6493522). The lookup result is irrelevant.
	e.fn.GetMethodID(e.ptr, cls, "notify", "()V")
	if types.IsTrue(e.fn.ExceptionCheck(e.ptr)) {
		e.fn.ExceptionClear(e.ptr)
	}

	rc := e.fn.RegisterNatives(e.ptr, cls, &methods[0], types.Jint(len(methods)))
	if err := e.status("RegisterNatives", rc); err != nil {
		return err
	}
	Logger().Debug("registered natives",
		zap.Uintptr("class", uintptr(cls)),
		zap.Int("count", len(methods)))
	return nil
}

func (e *Env) UnregisterNatives(cls types.Class) error {
	return e.status("UnregisterNatives", e.fn.UnregisterNatives(e.ptr, cls))
}

func (e *Env) MonitorEnter(obj types.Object) error {
	return e.status("MonitorEnter", e.fn.MonitorEnter(e.ptr, obj))
}

func (e *Env) MonitorExit(obj types.Object) error {
	return e.status("MonitorExit", e.fn.MonitorExit(e.ptr, obj))
}

// Synchronized runs fn while holding the monitor of obj.
func (e *Env) Synchronized(obj types.Object, fn func() error) (err error) {
	if err := e.MonitorEnter(obj); err != nil {
		return err
	}
	defer func() {
		if exitErr := e.MonitorExit(obj); err == nil {
			err = exitErr
		}
	}()
	return fn()
}

// GetJavaVM returns the VM this Env belongs to.
func (e *Env) GetJavaVM() (types.VMPtr, error) {
	var vm types.VMPtr
	if rc := e.fn.GetJavaVM(e.ptr, &vm); rc != 0 {
		return 0, errors.Status(types.Status(rc), "GetJavaVM")
	}
	return vm, nil
}

// NewDirectByteBuffer wraps capacity bytes at addr in a java.nio.ByteBuffer.
// The memory must stay valid and unmoved while the buffer is reachable.
func (e *Env) NewDirectByteBuffer(addr unsafe.Pointer, capacity int64) (types.Object, error) {
	return e.created("NewDirectByteBuffer", e.fn.NewDirectByteBuffer(e.ptr, addr, types.Jlong(capacity)))
}

func (e *Env) GetDirectBufferAddress(buf types.Object) (unsafe.Pointer, error) {
	return result(e, "GetDirectBufferAddress", e.fn.GetDirectBufferAddress(e.ptr, buf))
}

// GetDirectBufferCapacity returns -1 when buf is not a direct buffer.
func (e *Env) GetDirectBufferCapacity(buf types.Object) (int64, error) {
	n, err := result(e, "GetDirectBufferCapacity", e.fn.GetDirectBufferCapacity(e.ptr, buf))
	return int64(n), err
}

// DirectBytes returns the memory of a direct buffer as a byte slice.
func (e *Env) DirectBytes(buf types.Object) ([]byte, error) {
	addr, err := e.GetDirectBufferAddress(buf)
	if err != nil {
		return nil, err
	}
	n, err := e.GetDirectBufferCapacity(buf)
	if err != nil {
		return nil, err
	}
	if addr == nil || n < 0 {
		return nil, errors.InvalidInput(errors.PhaseInvoke, "not a direct buffer")
	}
	return unsafe.Slice((*byte)(addr), n), nil
}
