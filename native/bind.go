package native

import (
	"reflect"
	"strconv"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"go.uber.org/zap"

	"github.com/wippyai/jni-runtime/errors"
	"github.com/wippyai/jni-runtime/types"
)

const ptrSize = unsafe.Sizeof(uintptr(0))

// Bound tables keyed by table address. Every Env of a VM shares one table.
var (
	envTables sync.Map // uintptr -> *EnvFuncs
	vmTables  sync.Map // uintptr -> *VMFuncs
)

// BindEnv binds the function table behind a JNIEnv pointer.
func BindEnv(env types.EnvPtr) (*EnvFuncs, error) {
	if env == 0 {
		return nil, errors.NilPointer(errors.PhaseBind, "JNIEnv")
	}
	table := *(*uintptr)(unsafe.Pointer(env))
	if table == 0 {
		return nil, errors.NilPointer(errors.PhaseBind, "JNIEnv function table")
	}
	if cached, ok := envTables.Load(table); ok {
		return cached.(*EnvFuncs), nil
	}

	fns := &EnvFuncs{}
	var version types.Version
	versionOf := func() types.Version {
		if version == 0 {
			version = types.Version(fns.GetVersion(env))
		}
		return version
	}
	if err := bindTable(fns, table, versionOf); err != nil {
		return nil, err
	}
	Logger().Debug("bound env table",
		zap.Uintptr("table", table),
		zap.Stringer("version", versionOf()))

	actual, _ := envTables.LoadOrStore(table, fns)
	return actual.(*EnvFuncs), nil
}

// BindVM binds the invocation table behind a JavaVM pointer.
func BindVM(vm types.VMPtr) (*VMFuncs, error) {
	if vm == 0 {
		return nil, errors.NilPointer(errors.PhaseBind, "JavaVM")
	}
	table := *(*uintptr)(unsafe.Pointer(vm))
	if table == 0 {
		return nil, errors.NilPointer(errors.PhaseBind, "JavaVM function table")
	}
	if cached, ok := vmTables.Load(table); ok {
		return cached.(*VMFuncs), nil
	}

	fns := &VMFuncs{}
	if err := bindTable(fns, table, nil); err != nil {
		return nil, err
	}
	Logger().Debug("bound vm table", zap.Uintptr("table", table))

	actual, _ := vmTables.LoadOrStore(table, fns)
	return actual.(*VMFuncs), nil
}

// bindTable walks dst's fields in order and binds field i to slot i of the
// table at address table. Func fields become callable through purego; uintptr
// fields receive the raw slot value.
func bindTable(dst any, table uintptr, version func() types.Version) (err error) {
	v := reflect.ValueOf(dst).Elem()
	t := v.Type()

	defer func() {
		if r := recover(); r != nil {
			err = errors.Panic(errors.PhaseBind, t.Name(), r)
		}
	}()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if since, ok := field.Tag.Lookup("since"); ok {
			need, perr := strconv.ParseUint(since, 0, 32)
			if perr != nil {
				return errors.Wrap(errors.PhaseBind, errors.KindInvalidInput, perr, field.Name)
			}
			if version == nil || !version().AtLeast(types.Version(need)) {
				Logger().Debug("slot not present in table",
					zap.String("slot", field.Name),
					zap.Int("index", i))
				continue
			}
		}

		slot := *(*uintptr)(unsafe.Pointer(table + uintptr(i)*ptrSize))
		fv := v.Field(i)
		switch fv.Kind() {
		case reflect.Uintptr:
			fv.SetUint(uint64(slot))
		case reflect.Func:
			if slot == 0 {
				continue
			}
			purego.RegisterFunc(fv.Addr().Interface(), slot)
		default:
			return errors.Unsupported(errors.PhaseBind, "field kind "+fv.Kind().String()+" in "+t.Name())
		}
	}
	return nil
}

// SlotIndex returns the table slot of the named EnvFuncs field, or -1.
func SlotIndex(name string) int {
	f, ok := reflect.TypeFor[EnvFuncs]().FieldByName(name)
	if !ok {
		return -1
	}
	return f.Index[0]
}

// NumSlots is the number of slots described by EnvFuncs, reserved slots included.
func NumSlots() int {
	return reflect.TypeFor[EnvFuncs]().NumField()
}

// Binder turns raw JNIEnv and JavaVM pointers into callable tables.
type Binder interface {
	BindEnv(env types.EnvPtr) (*EnvFuncs, error)
	BindVM(vm types.VMPtr) (*VMFuncs, error)
}

type puregoBinder struct{}

func (puregoBinder) BindEnv(env types.EnvPtr) (*EnvFuncs, error) { return BindEnv(env) }
func (puregoBinder) BindVM(vm types.VMPtr) (*VMFuncs, error) { return BindVM(vm) }

// Purego binds tables of a real JVM through purego.
var Purego Binder = puregoBinder{}
