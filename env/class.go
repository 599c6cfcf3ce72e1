package env

import (
	"unsafe"

	"github.com/wippyai/jni-runtime/errors"
	"github.com/wippyai/jni-runtime/types"
)

// DefineClass loads a class from raw class file bytes.
func (e *Env) DefineClass(name string, loader types.Object, buf []byte) (types.Class, error) {
	ptr := unsafe.Pointer(unsafe.SliceData(buf))
	return e.created("DefineClass", e.fn.DefineClass(e.ptr, name, loader, ptr, types.Jsize(len(buf))))
}

// FindClass loads a class by its slash-separated name, e.g. "java/lang/Object".
func (e *Env) FindClass(name string) (types.Class, error) {
	return e.created("FindClass", e.fn.FindClass(e.ptr, name))
}

func (e *Env) GetSuperclass(cls types.Class) (types.Class, error) {
	return e.local("GetSuperclass", e.fn.GetSuperclass(e.ptr, cls))
}

func (e *Env) IsAssignableFrom(sub, sup types.Class) bool {
	return types.IsTrue(e.fn.IsAssignableFrom(e.ptr, sub, sup))
}

func (e *Env) FromReflectedMethod(method types.Object) (types.MethodID, error) {
	return result(e, "FromReflectedMethod", e.fn.FromReflectedMethod(e.ptr, method))
}

func (e *Env) FromReflectedField(field types.Object) (types.FieldID, error) {
	return result(e, "FromReflectedField", e.fn.FromReflectedField(e.ptr, field))
}

func (e *Env) ToReflectedMethod(cls types.Class, mid types.MethodID, isStatic bool) (types.Object, error) {
	return e.local("ToReflectedMethod", e.fn.ToReflectedMethod(e.ptr, cls, mid, types.Bool(isStatic)))
}

func (e *Env) ToReflectedField(cls types.Class, fid types.FieldID, isStatic bool) (types.Object, error) {
	return e.local("ToReflectedField", e.fn.ToReflectedField(e.ptr, cls, fid, types.Bool(isStatic)))
}

// AllocObject allocates an instance of cls without running a constructor.
func (e *Env) AllocObject(cls types.Class) (types.Object, error) {
	return e.created("AllocObject", e.fn.AllocObject(e.ptr, cls))
}

// NewObject constructs an instance of cls with the constructor mid.
func (e *Env) NewObject(cls types.Class, mid types.MethodID, args ...types.Value) (types.Object, error) {
	return e.created("NewObject", e.fn.NewObjectA(e.ptr, cls, mid, types.Values(args)))
}

func (e *Env) GetObjectClass(obj types.Object) (types.Class, error) {
	return e.local("GetObjectClass", e.fn.GetObjectClass(e.ptr, obj))
}

func (e *Env) IsInstanceOf(obj types.Object, cls types.Class) bool {
	return types.IsTrue(e.fn.IsInstanceOf(e.ptr, obj, cls))
}

func (e *Env) GetMethodID(cls types.Class, name, sig string) (types.MethodID, error) {
	return resolved(e, "GetMethodID", e.fn.GetMethodID(e.ptr, cls, name, sig))
}

func (e *Env) GetStaticMethodID(cls types.Class, name, sig string) (types.MethodID, error) {
	return resolved(e, "GetStaticMethodID", e.fn.GetStaticMethodID(e.ptr, cls, name, sig))
}

func (e *Env) GetFieldID(cls types.Class, name, sig string) (types.FieldID, error) {
	return resolved(e, "GetFieldID", e.fn.GetFieldID(e.ptr, cls, name, sig))
}

func (e *Env) GetStaticFieldID(cls types.Class, name, sig string) (types.FieldID, error) {
	return resolved(e, "GetStaticFieldID", e.fn.GetStaticFieldID(e.ptr, cls, name, sig))
}

// GetModule returns the module of cls. Requires JNI 9.
func (e *Env) GetModule(cls types.Class) (types.Object, error) {
	if e.fn.GetModule == nil {
		return types.Null, errors.Statusf(types.EVERSION, "GetModule", "table version %s", e.Version())
	}
	return e.local("GetModule", e.fn.GetModule(e.ptr, cls))
}

// IsVirtualThread reports whether obj is a virtual thread. Requires JNI 21.
func (e *Env) IsVirtualThread(obj types.Object) (bool, error) {
	if e.fn.IsVirtualThread == nil {
		return false, errors.Statusf(types.EVERSION, "IsVirtualThread", "table version %s", e.Version())
	}
	v, err := result(e, "IsVirtualThread", e.fn.IsVirtualThread(e.ptr, obj))
	return types.IsTrue(v), err
}

// ClassName returns the binary name of cls as reported by Class.getName.
func (e *Env) ClassName(cls types.Class) (string, error) {
	meta, err := e.GetObjectClass(cls)
	if err != nil {
		return "", err
	}
	defer e.DeleteLocalRef(meta)

	getName, err := e.GetMethodID(meta, "getName", "()Ljava/lang/String;")
	if err != nil {
		return "", err
	}
	name, err := e.CallObjectMethod(cls, getName)
	if err != nil {
		return "", err
	}
	if name.IsNull() {
		return "", errors.NullResult("Class.getName")
	}
	defer e.DeleteLocalRef(name)
	return e.GoString(name)
}

// Method is a resolved method descriptor. Class is borrowed from the caller
// and must outlive the descriptor.
type Method struct {
	Class     types.Class
	Name      string
	Signature string
	ID        types.MethodID
	Static    bool
}

// Field is a resolved field descriptor. Class is borrowed from the caller.
type Field struct {
	Class     types.Class
	Name      string
	Signature string
	ID        types.FieldID
	Static    bool
}

// LookupMethod resolves an instance method of cls.
func (e *Env) LookupMethod(cls types.Class, name, sig string) (Method, error) {
	id, err := e.GetMethodID(cls, name, sig)
	if err != nil {
		return Method{}, err
	}
	return Method{Class: cls, Name: name, Signature: sig, ID: id}, nil
}

// LookupStaticMethod resolves a static method of cls.
func (e *Env) LookupStaticMethod(cls types.Class, name, sig string) (Method, error) {
	id, err := e.GetStaticMethodID(cls, name, sig)
	if err != nil {
		return Method{}, err
	}
	return Method{Class: cls, Name: name, Signature: sig, ID: id, Static: true}, nil
}

// LookupField resolves an instance field of cls.
func (e *Env) LookupField(cls types.Class, name, sig string) (Field, error) {
	id, err := e.GetFieldID(cls, name, sig)
	if err != nil {
		return Field{}, err
	}
	return Field{Class: cls, Name: name, Signature: sig, ID: id}, nil
}

// LookupStaticField resolves a static field of cls.
func (e *Env) LookupStaticField(cls types.Class, name, sig string) (Field, error) {
	id, err := e.GetStaticFieldID(cls, name, sig)
	if err != nil {
		return Field{}, err
	}
	return Field{Class: cls, Name: name, Signature: sig, ID: id, Static: true}, nil
}
