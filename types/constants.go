package types

import "fmt"

// jboolean constants.
const (
	False Jboolean = 0
	True  Jboolean = 1
)

// Status is a JNI return code.
type Status int32

// Possible return values of JNI functions. The values are part of the ABI.
const (
	OK        Status = 0  // success
	ERR       Status = -1 // unknown error
	EDETACHED Status = -2 // thread detached from the VM
	EVERSION  Status = -3 // JNI version error
	ENOMEM    Status = -4 // not enough memory
	EEXIST    Status = -5 // VM already created
	EINVAL    Status = -6 // invalid arguments
)

var statusReasons = map[Status]string{
	OK:        "success",
	ERR:       "unknown error",
	EDETACHED: "thread detached from the VM",
	EVERSION:  "JNI version error",
	ENOMEM:    "not enough memory",
	EEXIST:    "VM already created",
	EINVAL:    "invalid arguments",
}

// Reason returns the human-readable text for a status code.
func (s Status) Reason() string {
	if r, ok := statusReasons[s]; ok {
		return r
	}
	return fmt.Sprintf("unknown error code %d", int32(s))
}

func (s Status) String() string {
	return s.Reason()
}

// RefType is the reference class of a handle (jobjectRefType).
type RefType int32

const (
	InvalidRefType    RefType = 0
	LocalRefType      RefType = 1
	GlobalRefType     RefType = 2
	WeakGlobalRefType RefType = 3
)

func (r RefType) String() string {
	switch r {
	case InvalidRefType:
		return "invalid"
	case LocalRefType:
		return "local"
	case GlobalRefType:
		return "global"
	case WeakGlobalRefType:
		return "weak-global"
	default:
		return fmt.Sprintf("RefType(%d)", int32(r))
	}
}

// ReleaseMode is the mode argument of Release<Type>ArrayElements.
// The zero value copies back and frees the buffer.
type ReleaseMode = Jint

const (
	CopyBack ReleaseMode = 0
	Commit   ReleaseMode = 1
	Abort    ReleaseMode = 2
)
