package env

import (
	"unsafe"

	"github.com/wippyai/jni-runtime/errors"
	"github.com/wippyai/jni-runtime/types"
)

type (
	newArrayFunc     func(env types.EnvPtr, n types.Jsize) types.Array
	getElementsFunc  func(env types.EnvPtr, arr types.Array, isCopy *types.Jboolean) unsafe.Pointer
	releaseElemsFunc func(env types.EnvPtr, arr types.Array, elems unsafe.Pointer, mode types.Jint)
	regionFunc       func(env types.EnvPtr, arr types.Array, start, n types.Jsize, buf unsafe.Pointer)
)

func (e *Env) GetArrayLength(arr types.Array) (int, error) {
	n, err := result(e, "GetArrayLength", e.fn.GetArrayLength(e.ptr, arr))
	return int(n), err
}

// NewObjectArray creates an array of n elements of cls, each set to init.
func (e *Env) NewObjectArray(n int, cls types.Class, init types.Object) (types.ObjectArray, error) {
	return e.created("NewObjectArray", e.fn.NewObjectArray(e.ptr, types.Jsize(n), cls, init))
}

func (e *Env) GetObjectArrayElement(arr types.ObjectArray, i int) (types.Object, error) {
	return e.local("GetObjectArrayElement", e.fn.GetObjectArrayElement(e.ptr, arr, types.Jsize(i)))
}

func (e *Env) SetObjectArrayElement(arr types.ObjectArray, i int, val types.Object) error {
	e.fn.SetObjectArrayElement(e.ptr, arr, types.Jsize(i), val)
	return e.check("SetObjectArrayElement")
}

func newArray(e *Env, op string, n int, fn newArrayFunc) (types.Array, error) {
	return e.created(op, fn(e.ptr, types.Jsize(n)))
}

// elements returns a typed view of the array body. The view aliases VM or
// copied memory and is valid until released.
func elements[T any](e *Env, op string, arr types.Array, fn getElementsFunc) ([]T, bool, error) {
	n, err := e.GetArrayLength(arr)
	if err != nil {
		return nil, false, err
	}
	var cp types.Jboolean
	ptr, err := result(e, op, fn(e.ptr, arr, &cp))
	if err != nil {
		return nil, false, err
	}
	if ptr == nil {
		return nil, false, errors.NullResult(op)
	}
	return unsafe.Slice((*T)(ptr), n), types.IsTrue(cp), nil
}

func releaseElements[T any](e *Env, op string, arr types.Array, elems []T, mode types.ReleaseMode, fn releaseElemsFunc) error {
	fn(e.ptr, arr, unsafe.Pointer(unsafe.SliceData(elems)), mode)
	return e.check(op)
}

func region[T any](e *Env, op string, arr types.Array, start int, buf []T, fn regionFunc) error {
	if len(buf) == 0 {
		return nil
	}
	fn(e.ptr, arr, types.Jsize(start), types.Jsize(len(buf)), unsafe.Pointer(&buf[0]))
	return e.check(op)
}

func (e *Env) NewBooleanArray(n int) (types.Array, error) {
	return newArray(e, "NewBooleanArray", n, e.fn.NewBooleanArray)
}

func (e *Env) NewByteArray(n int) (types.Array, error) {
	return newArray(e, "NewByteArray", n, e.fn.NewByteArray)
}

func (e *Env) NewCharArray(n int) (types.Array, error) {
	return newArray(e, "NewCharArray", n, e.fn.NewCharArray)
}

func (e *Env) NewShortArray(n int) (types.Array, error) {
	return newArray(e, "NewShortArray", n, e.fn.NewShortArray)
}

func (e *Env) NewIntArray(n int) (types.Array, error) {
	return newArray(e, "NewIntArray", n, e.fn.NewIntArray)
}

func (e *Env) NewLongArray(n int) (types.Array, error) {
	return newArray(e, "NewLongArray", n, e.fn.NewLongArray)
}

func (e *Env) NewFloatArray(n int) (types.Array, error) {
	return newArray(e, "NewFloatArray", n, e.fn.NewFloatArray)
}

func (e *Env) NewDoubleArray(n int) (types.Array, error) {
	return newArray(e, "NewDoubleArray", n, e.fn.NewDoubleArray)
}

func (e *Env) GetBooleanArrayElements(arr types.Array) ([]types.Jboolean, bool, error) {
	return elements[types.Jboolean](e, "GetBooleanArrayElements", arr, e.fn.GetBooleanArrayElements)
}

func (e *Env) GetByteArrayElements(arr types.Array) ([]types.Jbyte, bool, error) {
	return elements[types.Jbyte](e, "GetByteArrayElements", arr, e.fn.GetByteArrayElements)
}

func (e *Env) GetCharArrayElements(arr types.Array) ([]types.Jchar, bool, error) {
	return elements[types.Jchar](e, "GetCharArrayElements", arr, e.fn.GetCharArrayElements)
}

func (e *Env) GetShortArrayElements(arr types.Array) ([]types.Jshort, bool, error) {
	return elements[types.Jshort](e, "GetShortArrayElements", arr, e.fn.GetShortArrayElements)
}

func (e *Env) GetIntArrayElements(arr types.Array) ([]types.Jint, bool, error) {
	return elements[types.Jint](e, "GetIntArrayElements", arr, e.fn.GetIntArrayElements)
}

func (e *Env) GetLongArrayElements(arr types.Array) ([]types.Jlong, bool, error) {
	return elements[types.Jlong](e, "GetLongArrayElements", arr, e.fn.GetLongArrayElements)
}

func (e *Env) GetFloatArrayElements(arr types.Array) ([]types.Jfloat, bool, error) {
	return elements[types.Jfloat](e, "GetFloatArrayElements", arr, e.fn.GetFloatArrayElements)
}

func (e *Env) GetDoubleArrayElements(arr types.Array) ([]types.Jdouble, bool, error) {
	return elements[types.Jdouble](e, "GetDoubleArrayElements", arr, e.fn.GetDoubleArrayElements)
}

func (e *Env) ReleaseBooleanArrayElements(arr types.Array, elems []types.Jboolean, mode types.ReleaseMode) error {
	return releaseElements(e, "ReleaseBooleanArrayElements", arr, elems, mode, e.fn.ReleaseBooleanArrayElements)
}

func (e *Env) ReleaseByteArrayElements(arr types.Array, elems []types.Jbyte, mode types.ReleaseMode) error {
	return releaseElements(e, "ReleaseByteArrayElements", arr, elems, mode, e.fn.ReleaseByteArrayElements)
}

func (e *Env) ReleaseCharArrayElements(arr types.Array, elems []types.Jchar, mode types.ReleaseMode) error {
	return releaseElements(e, "ReleaseCharArrayElements", arr, elems, mode, e.fn.ReleaseCharArrayElements)
}

func (e *Env) ReleaseShortArrayElements(arr types.Array, elems []types.Jshort, mode types.ReleaseMode) error {
	return releaseElements(e, "ReleaseShortArrayElements", arr, elems, mode, e.fn.ReleaseShortArrayElements)
}

func (e *Env) ReleaseIntArrayElements(arr types.Array, elems []types.Jint, mode types.ReleaseMode) error {
	return releaseElements(e, "ReleaseIntArrayElements", arr, elems, mode, e.fn.ReleaseIntArrayElements)
}

func (e *Env) ReleaseLongArrayElements(arr types.Array, elems []types.Jlong, mode types.ReleaseMode) error {
	return releaseElements(e, "ReleaseLongArrayElements", arr, elems, mode, e.fn.ReleaseLongArrayElements)
}

func (e *Env) ReleaseFloatArrayElements(arr types.Array, elems []types.Jfloat, mode types.ReleaseMode) error {
	return releaseElements(e, "ReleaseFloatArrayElements", arr, elems, mode, e.fn.ReleaseFloatArrayElements)
}

func (e *Env) ReleaseDoubleArrayElements(arr types.Array, elems []types.Jdouble, mode types.ReleaseMode) error {
	return releaseElements(e, "ReleaseDoubleArrayElements", arr, elems, mode, e.fn.ReleaseDoubleArrayElements)
}

func (e *Env) GetBooleanArrayRegion(arr types.Array, start int, buf []types.Jboolean) error {
	return region(e, "GetBooleanArrayRegion", arr, start, buf, e.fn.GetBooleanArrayRegion)
}

func (e *Env) GetByteArrayRegion(arr types.Array, start int, buf []types.Jbyte) error {
	return region(e, "GetByteArrayRegion", arr, start, buf, e.fn.GetByteArrayRegion)
}

func (e *Env) GetCharArrayRegion(arr types.Array, start int, buf []types.Jchar) error {
	return region(e, "GetCharArrayRegion", arr, start, buf, e.fn.GetCharArrayRegion)
}

func (e *Env) GetShortArrayRegion(arr types.Array, start int, buf []types.Jshort) error {
	return region(e, "GetShortArrayRegion", arr, start, buf, e.fn.GetShortArrayRegion)
}

func (e *Env) GetIntArrayRegion(arr types.Array, start int, buf []types.Jint) error {
	return region(e, "GetIntArrayRegion", arr, start, buf, e.fn.GetIntArrayRegion)
}

func (e *Env) GetLongArrayRegion(arr types.Array, start int, buf []types.Jlong) error {
	return region(e, "GetLongArrayRegion", arr, start, buf, e.fn.GetLongArrayRegion)
}

func (e *Env) GetFloatArrayRegion(arr types.Array, start int, buf []types.Jfloat) error {
	return region(e, "GetFloatArrayRegion", arr, start, buf, e.fn.GetFloatArrayRegion)
}

func (e *Env) GetDoubleArrayRegion(arr types.Array, start int, buf []types.Jdouble) error {
	return region(e, "GetDoubleArrayRegion", arr, start, buf, e.fn.GetDoubleArrayRegion)
}

func (e *Env) SetBooleanArrayRegion(arr types.Array, start int, buf []types.Jboolean) error {
	return region(e, "SetBooleanArrayRegion", arr, start, buf, e.fn.SetBooleanArrayRegion)
}

func (e *Env) SetByteArrayRegion(arr types.Array, start int, buf []types.Jbyte) error {
	return region(e, "SetByteArrayRegion", arr, start, buf, e.fn.SetByteArrayRegion)
}

func (e *Env) SetCharArrayRegion(arr types.Array, start int, buf []types.Jchar) error {
	return region(e, "SetCharArrayRegion", arr, start, buf, e.fn.SetCharArrayRegion)
}

func (e *Env) SetShortArrayRegion(arr types.Array, start int, buf []types.Jshort) error {
	return region(e, "SetShortArrayRegion", arr, start, buf, e.fn.SetShortArrayRegion)
}

func (e *Env) SetIntArrayRegion(arr types.Array, start int, buf []types.Jint) error {
	return region(e, "SetIntArrayRegion", arr, start, buf, e.fn.SetIntArrayRegion)
}

func (e *Env) SetLongArrayRegion(arr types.Array, start int, buf []types.Jlong) error {
	return region(e, "SetLongArrayRegion", arr, start, buf, e.fn.SetLongArrayRegion)
}

func (e *Env) SetFloatArrayRegion(arr types.Array, start int, buf []types.Jfloat) error {
	return region(e, "SetFloatArrayRegion", arr, start, buf, e.fn.SetFloatArrayRegion)
}

func (e *Env) SetDoubleArrayRegion(arr types.Array, start int, buf []types.Jdouble) error {
	return region(e, "SetDoubleArrayRegion", arr, start, buf, e.fn.SetDoubleArrayRegion)
}

// GetPrimitiveArrayCritical returns a raw pointer to the array body. No other
// JNI call may be made until ReleasePrimitiveArrayCritical.
func (e *Env) GetPrimitiveArrayCritical(arr types.Array) (unsafe.Pointer, bool, error) {
	var cp types.Jboolean
	ptr := e.fn.GetPrimitiveArrayCritical(e.ptr, arr, &cp)
	if ptr == nil {
		if err := e.check("GetPrimitiveArrayCritical"); err != nil {
			return nil, false, err
		}
		return nil, false, errors.NullResult("GetPrimitiveArrayCritical")
	}
	return ptr, types.IsTrue(cp), nil
}

func (e *Env) ReleasePrimitiveArrayCritical(arr types.Array, carray unsafe.Pointer, mode types.ReleaseMode) {
	e.fn.ReleasePrimitiveArrayCritical(e.ptr, arr, carray, mode)
}
