package env

import (
	"unicode/utf16"
	"unsafe"

	"github.com/wippyai/jni-runtime/errors"
	"github.com/wippyai/jni-runtime/types"
)

// NewString creates a java.lang.String from UTF-16 code units.
func (e *Env) NewString(chars []types.Jchar) (types.String, error) {
	ptr := unsafe.Pointer(unsafe.SliceData(chars))
	return e.created("NewString", e.fn.NewString(e.ptr, ptr, types.Jsize(len(chars))))
}

// GetStringLength returns the length of s in UTF-16 code units.
func (e *Env) GetStringLength(s types.String) (int, error) {
	n, err := result(e, "GetStringLength", e.fn.GetStringLength(e.ptr, s))
	return int(n), err
}

// GetStringChars pins or copies the UTF-16 contents of s. The result must be
// passed to ReleaseStringChars.
func (e *Env) GetStringChars(s types.String) (chars []types.Jchar, isCopy bool, err error) {
	n, err := e.GetStringLength(s)
	if err != nil {
		return nil, false, err
	}
	var cp types.Jboolean
	ptr, err := result(e, "GetStringChars", e.fn.GetStringChars(e.ptr, s, &cp))
	if err != nil {
		return nil, false, err
	}
	if ptr == nil {
		return nil, false, errors.NullResult("GetStringChars")
	}
	return unsafe.Slice((*types.Jchar)(ptr), n), types.IsTrue(cp), nil
}

func (e *Env) ReleaseStringChars(s types.String, chars []types.Jchar) error {
	e.fn.ReleaseStringChars(e.ptr, s, unsafe.Pointer(unsafe.SliceData(chars)))
	return e.check("ReleaseStringChars")
}

// NewStringUTF creates a java.lang.String from modified UTF-8.
func (e *Env) NewStringUTF(utf string) (types.String, error) {
	return e.created("NewStringUTF", e.fn.NewStringUTF(e.ptr, utf))
}

// GetStringUTFLength returns the modified UTF-8 length of s in bytes.
func (e *Env) GetStringUTFLength(s types.String) (int, error) {
	n, err := result(e, "GetStringUTFLength", e.fn.GetStringUTFLength(e.ptr, s))
	return int(n), err
}

// GetStringUTFChars returns the modified UTF-8 contents of s. The result must
// be passed to ReleaseStringUTFChars.
func (e *Env) GetStringUTFChars(s types.String) (utf []byte, isCopy bool, err error) {
	n, err := e.GetStringUTFLength(s)
	if err != nil {
		return nil, false, err
	}
	var cp types.Jboolean
	ptr, err := result(e, "GetStringUTFChars", e.fn.GetStringUTFChars(e.ptr, s, &cp))
	if err != nil {
		return nil, false, err
	}
	if ptr == nil {
		return nil, false, errors.NullResult("GetStringUTFChars")
	}
	return unsafe.Slice((*byte)(ptr), n), types.IsTrue(cp), nil
}

func (e *Env) ReleaseStringUTFChars(s types.String, utf []byte) error {
	e.fn.ReleaseStringUTFChars(e.ptr, s, unsafe.Pointer(unsafe.SliceData(utf)))
	return e.check("ReleaseStringUTFChars")
}

// GetStringRegion copies len(buf) UTF-16 units of s starting at start.
func (e *Env) GetStringRegion(s types.String, start int, buf []types.Jchar) error {
	if len(buf) == 0 {
		return nil
	}
	e.fn.GetStringRegion(e.ptr, s, types.Jsize(start), types.Jsize(len(buf)), unsafe.Pointer(&buf[0]))
	return e.check("GetStringRegion")
}

// GetStringUTFRegion converts n UTF-16 units of s starting at start to
// modified UTF-8 in buf. buf must be large enough for the encoded bytes.
func (e *Env) GetStringUTFRegion(s types.String, start, n int, buf []byte) error {
	if n == 0 {
		return nil
	}
	if len(buf) == 0 {
		return errors.InvalidInput(errors.PhaseInvoke, "GetStringUTFRegion: empty buffer")
	}
	e.fn.GetStringUTFRegion(e.ptr, s, types.Jsize(start), types.Jsize(n), unsafe.Pointer(&buf[0]))
	return e.check("GetStringUTFRegion")
}

// GetStringCritical is GetStringChars inside a critical region. No other JNI
// call may be made until ReleaseStringCritical.
func (e *Env) GetStringCritical(s types.String) (chars []types.Jchar, isCopy bool, err error) {
	n, err := e.GetStringLength(s)
	if err != nil {
		return nil, false, err
	}
	var cp types.Jboolean
	ptr := e.fn.GetStringCritical(e.ptr, s, &cp)
	if ptr == nil {
		if err := e.check("GetStringCritical"); err != nil {
			return nil, false, err
		}
		return nil, false, errors.NullResult("GetStringCritical")
	}
	return unsafe.Slice((*types.Jchar)(ptr), n), types.IsTrue(cp), nil
}

func (e *Env) ReleaseStringCritical(s types.String, chars []types.Jchar) {
	e.fn.ReleaseStringCritical(e.ptr, s, unsafe.Pointer(unsafe.SliceData(chars)))
}

// GoString copies s into a Go string. A null s yields "".
func (e *Env) GoString(s types.String) (string, error) {
	if s.IsNull() {
		return "", nil
	}
	n, err := e.GetStringLength(s)
	if err != nil || n == 0 {
		return "", err
	}
	buf := make([]types.Jchar, n)
	if err := e.GetStringRegion(s, 0, buf); err != nil {
		return "", err
	}
	return string(utf16.Decode(buf)), nil
}

// NewGoString creates a java.lang.String from a Go string. Unlike
// NewStringUTF it handles supplementary characters and embedded NULs.
func (e *Env) NewGoString(str string) (types.String, error) {
	return e.NewString(utf16.Encode([]rune(str)))
}

// GetStringUTF copies the modified UTF-8 bytes of s into a Go string.
func (e *Env) GetStringUTF(s types.String) (string, error) {
	if s.IsNull() {
		return "", nil
	}
	utf, _, err := e.GetStringUTFChars(s)
	if err != nil {
		return "", err
	}
	str := string(utf)
	return str, e.ReleaseStringUTFChars(s, utf)
}
