package env

import "github.com/wippyai/jni-runtime/types"

func (e *Env) GetObjectField(obj types.Object, fid types.FieldID) (types.Object, error) {
	return e.local("GetObjectField", e.fn.GetObjectField(e.ptr, obj, fid))
}

func (e *Env) GetBooleanField(obj types.Object, fid types.FieldID) (bool, error) {
	v, err := result(e, "GetBooleanField", e.fn.GetBooleanField(e.ptr, obj, fid))
	return types.IsTrue(v), err
}

func (e *Env) GetByteField(obj types.Object, fid types.FieldID) (types.Jbyte, error) {
	return result(e, "GetByteField", e.fn.GetByteField(e.ptr, obj, fid))
}

func (e *Env) GetCharField(obj types.Object, fid types.FieldID) (types.Jchar, error) {
	return result(e, "GetCharField", e.fn.GetCharField(e.ptr, obj, fid))
}

func (e *Env) GetShortField(obj types.Object, fid types.FieldID) (types.Jshort, error) {
	return result(e, "GetShortField", e.fn.GetShortField(e.ptr, obj, fid))
}

func (e *Env) GetIntField(obj types.Object, fid types.FieldID) (types.Jint, error) {
	return result(e, "GetIntField", e.fn.GetIntField(e.ptr, obj, fid))
}

func (e *Env) GetLongField(obj types.Object, fid types.FieldID) (types.Jlong, error) {
	return result(e, "GetLongField", e.fn.GetLongField(e.ptr, obj, fid))
}

func (e *Env) GetFloatField(obj types.Object, fid types.FieldID) (types.Jfloat, error) {
	return result(e, "GetFloatField", e.fn.GetFloatField(e.ptr, obj, fid))
}

func (e *Env) GetDoubleField(obj types.Object, fid types.FieldID) (types.Jdouble, error) {
	return result(e, "GetDoubleField", e.fn.GetDoubleField(e.ptr, obj, fid))
}

func (e *Env) SetObjectField(obj types.Object, fid types.FieldID, val types.Object) error {
	e.fn.SetObjectField(e.ptr, obj, fid, val)
	return e.check("SetObjectField")
}

func (e *Env) SetBooleanField(obj types.Object, fid types.FieldID, val bool) error {
	e.fn.SetBooleanField(e.ptr, obj, fid, types.Bool(val))
	return e.check("SetBooleanField")
}

func (e *Env) SetByteField(obj types.Object, fid types.FieldID, val types.Jbyte) error {
	e.fn.SetByteField(e.ptr, obj, fid, val)
	return e.check("SetByteField")
}

func (e *Env) SetCharField(obj types.Object, fid types.FieldID, val types.Jchar) error {
	e.fn.SetCharField(e.ptr, obj, fid, val)
	return e.check("SetCharField")
}

func (e *Env) SetShortField(obj types.Object, fid types.FieldID, val types.Jshort) error {
	e.fn.SetShortField(e.ptr, obj, fid, val)
	return e.check("SetShortField")
}

func (e *Env) SetIntField(obj types.Object, fid types.FieldID, val types.Jint) error {
	e.fn.SetIntField(e.ptr, obj, fid, val)
	return e.check("SetIntField")
}

func (e *Env) SetLongField(obj types.Object, fid types.FieldID, val types.Jlong) error {
	e.fn.SetLongField(e.ptr, obj, fid, val)
	return e.check("SetLongField")
}

func (e *Env) SetFloatField(obj types.Object, fid types.FieldID, val types.Jfloat) error {
	e.fn.SetFloatField(e.ptr, obj, fid, val)
	return e.check("SetFloatField")
}

func (e *Env) SetDoubleField(obj types.Object, fid types.FieldID, val types.Jdouble) error {
	e.fn.SetDoubleField(e.ptr, obj, fid, val)
	return e.check("SetDoubleField")
}

func (e *Env) GetStaticObjectField(cls types.Class, fid types.FieldID) (types.Object, error) {
	return e.local("GetStaticObjectField", e.fn.GetStaticObjectField(e.ptr, cls, fid))
}

func (e *Env) GetStaticBooleanField(cls types.Class, fid types.FieldID) (bool, error) {
	v, err := result(e, "GetStaticBooleanField", e.fn.GetStaticBooleanField(e.ptr, cls, fid))
	return types.IsTrue(v), err
}

func (e *Env) GetStaticByteField(cls types.Class, fid types.FieldID) (types.Jbyte, error) {
	return result(e, "GetStaticByteField", e.fn.GetStaticByteField(e.ptr, cls, fid))
}

func (e *Env) GetStaticCharField(cls types.Class, fid types.FieldID) (types.Jchar, error) {
	return result(e, "GetStaticCharField", e.fn.GetStaticCharField(e.ptr, cls, fid))
}

func (e *Env) GetStaticShortField(cls types.Class, fid types.FieldID) (types.Jshort, error) {
	return result(e, "GetStaticShortField", e.fn.GetStaticShortField(e.ptr, cls, fid))
}

func (e *Env) GetStaticIntField(cls types.Class, fid types.FieldID) (types.Jint, error) {
	return result(e, "GetStaticIntField", e.fn.GetStaticIntField(e.ptr, cls, fid))
}

func (e *Env) GetStaticLongField(cls types.Class, fid types.FieldID) (types.Jlong, error) {
	return result(e, "GetStaticLongField", e.fn.GetStaticLongField(e.ptr, cls, fid))
}

func (e *Env) GetStaticFloatField(cls types.Class, fid types.FieldID) (types.Jfloat, error) {
	return result(e, "GetStaticFloatField", e.fn.GetStaticFloatField(e.ptr, cls, fid))
}

func (e *Env) GetStaticDoubleField(cls types.Class, fid types.FieldID) (types.Jdouble, error) {
	return result(e, "GetStaticDoubleField", e.fn.GetStaticDoubleField(e.ptr, cls, fid))
}

func (e *Env) SetStaticObjectField(cls types.Class, fid types.FieldID, val types.Object) error {
	e.fn.SetStaticObjectField(e.ptr, cls, fid, val)
	return e.check("SetStaticObjectField")
}

func (e *Env) SetStaticBooleanField(cls types.Class, fid types.FieldID, val bool) error {
	e.fn.SetStaticBooleanField(e.ptr, cls, fid, types.Bool(val))
	return e.check("SetStaticBooleanField")
}

func (e *Env) SetStaticByteField(cls types.Class, fid types.FieldID, val types.Jbyte) error {
	e.fn.SetStaticByteField(e.ptr, cls, fid, val)
	return e.check("SetStaticByteField")
}

func (e *Env) SetStaticCharField(cls types.Class, fid types.FieldID, val types.Jchar) error {
	e.fn.SetStaticCharField(e.ptr, cls, fid, val)
	return e.check("SetStaticCharField")
}

func (e *Env) SetStaticShortField(cls types.Class, fid types.FieldID, val types.Jshort) error {
	e.fn.SetStaticShortField(e.ptr, cls, fid, val)
	return e.check("SetStaticShortField")
}

func (e *Env) SetStaticIntField(cls types.Class, fid types.FieldID, val types.Jint) error {
	e.fn.SetStaticIntField(e.ptr, cls, fid, val)
	return e.check("SetStaticIntField")
}

func (e *Env) SetStaticLongField(cls types.Class, fid types.FieldID, val types.Jlong) error {
	e.fn.SetStaticLongField(e.ptr, cls, fid, val)
	return e.check("SetStaticLongField")
}

func (e *Env) SetStaticFloatField(cls types.Class, fid types.FieldID, val types.Jfloat) error {
	e.fn.SetStaticFloatField(e.ptr, cls, fid, val)
	return e.check("SetStaticFloatField")
}

func (e *Env) SetStaticDoubleField(cls types.Class, fid types.FieldID, val types.Jdouble) error {
	e.fn.SetStaticDoubleField(e.ptr, cls, fid, val)
	return e.check("SetStaticDoubleField")
}
