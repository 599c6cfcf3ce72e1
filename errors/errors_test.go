package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/wippyai/jni-runtime/types"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseCallback,
				Kind:   KindTypeMismatch,
				Op:     "NewMethod",
				GoType: "func(string)",
				Sig:    "(I)V",
				Detail: "argument 0",
			},
			contains: []string{"[callback]", "type_mismatch", "NewMethod", "func(string)", "(I)V", "argument 0"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseBind,
				Kind:  KindNilPointer,
			},
			contains: []string{"[bind]", "nil_pointer"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindNotFound,
				Detail: "libjvm.so",
				Cause:  errors.New("no such file"),
			},
			contains: []string{"[load]", "not_found", "libjvm.so", "caused by", "no such file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseLoad,
		Kind:  KindNotFound,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseInvoke,
		Kind:  KindNullResult,
		Op:    "FindClass",
	}

	if !err.Is(&Error{Phase: PhaseInvoke, Kind: KindNullResult}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseBind, Kind: KindNullResult}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseInvoke, Kind: KindOverflow}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, ErrNullResult) {
		t.Error("ErrNullResult should match on kind alone")
	}

	wrapped := fmt.Errorf("lookup: %w", NullResult("GetMethodID"))
	if !errors.Is(wrapped, ErrNullResult) {
		t.Error("wrapped null result should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseCallback, KindTypeMismatch).
		Op("NewMethod").
		GoType("func(int)").
		Sig("(J)V").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "jlong", "int").
		Build()

	if err.Phase != PhaseCallback {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseCallback)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if err.Op != "NewMethod" {
		t.Errorf("Op = %v, want NewMethod", err.Op)
	}
	if err.GoType != "func(int)" || err.Sig != "(J)V" {
		t.Errorf("GoType=%v Sig=%v", err.GoType, err.Sig)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected jlong, got int" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestStatusError(t *testing.T) {
	tests := []struct {
		code types.Status
		op   string
		want string
	}{
		{types.ENOMEM, "JNI_CreateJavaVM", "JNI_CreateJavaVM: not enough memory"},
		{types.EDETACHED, "GetEnv", "GetEnv: thread detached from the VM"},
		{types.EINVAL, "jni.method", "jni.method: invalid arguments"},
		{types.Status(-99), "Attach", "Attach: unknown error code -99"},
		{types.ERR, "", "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			err := Status(tt.code, tt.op)
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}
		})
	}

	t.Run("detail", func(t *testing.T) {
		err := Statusf(types.EINVAL, "jni.method", "bad code %q", 'Q')
		if !strings.HasPrefix(err.Error(), "jni.method: invalid arguments (") {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("errors.Is by code", func(t *testing.T) {
		err := fmt.Errorf("attach: %w", Status(types.EDETACHED, "AttachCurrentThread"))
		if !errors.Is(err, ErrDetached) {
			t.Error("should match ErrDetached")
		}
		if errors.Is(err, ErrVersion) {
			t.Error("should not match ErrVersion")
		}
		if errors.Is(err, ErrThrown) {
			t.Error("status channel must not match the exception channel")
		}
		s, ok := AsStatus(err)
		if !ok || s.Op != "AttachCurrentThread" {
			t.Errorf("AsStatus = %v, %v", s, ok)
		}
	})
}

func TestThrowableError(t *testing.T) {
	err := &ThrowableError{Ref: types.Throwable(0x1234), Op: "FindClass"}

	if got := err.Error(); got != "FindClass: java exception (ref 0x1234)" {
		t.Errorf("Error() = %q", got)
	}
	if err.Throwable() != 0x1234 {
		t.Errorf("Throwable() = %#x", err.Throwable())
	}
	if !errors.Is(fmt.Errorf("x: %w", err), ErrThrown) {
		t.Error("should match ErrThrown")
	}
	if errors.Is(err, ErrInvalid) {
		t.Error("exception channel must not match status channel")
	}
	if _, ok := AsStatus(err); ok {
		t.Error("AsStatus should fail")
	}
	got, ok := AsThrowable(fmt.Errorf("wrapped: %w", err))
	if !ok || got != err {
		t.Error("AsThrowable should unwrap")
	}
	if (&ThrowableError{Ref: 1}).Error() != "java exception (ref 0x1)" {
		t.Error("unnamed op format")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("NullResult", func(t *testing.T) {
		err := NullResult("NewStringUTF")
		if err.Kind != KindNullResult || err.Op != "NewStringUTF" {
			t.Errorf("got %v", err)
		}
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseSignature, "(I)V", "string", "jint expected")
		if err.Kind != KindTypeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhaseSignature, 300, "jbyte")
		if err.Kind != KindOverflow || err.Value != 300 {
			t.Errorf("got %v", err)
		}
	})

	t.Run("Registration", func(t *testing.T) {
		cause := Status(types.ERR, "RegisterNatives")
		err := Registration("com/example/Native", "add", cause)
		if !errors.Is(err, cause) {
			t.Error("should wrap cause")
		}
		if !strings.Contains(err.Error(), "com/example/Native.add") {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("Panic", func(t *testing.T) {
		err := Panic(PhaseCallback, "add", "boom")
		if err.Kind != KindPanic || err.Detail != "boom" {
			t.Errorf("got %v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseLoad, "symbol", "JNI_CreateJavaVM")
		if !strings.Contains(err.Error(), `"JNI_CreateJavaVM"`) {
			t.Errorf("Error() = %q", err.Error())
		}
	})
}
