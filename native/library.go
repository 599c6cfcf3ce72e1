//go:build darwin || freebsd || linux || netbsd

package native

import (
	"reflect"

	"github.com/ebitengine/purego"
	"go.uber.org/zap"

	"github.com/wippyai/jni-runtime/errors"
)

// Open dlopens the JVM library at path and binds the bootstrap symbols.
func Open(path string) (*Library, error) {
	if path == "" {
		return nil, errors.InvalidInput(errors.PhaseLoad, "empty library path")
	}
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, errors.Load("dlopen "+path, err)
	}

	lib := &Library{Path: path, handle: handle}
	v := reflect.ValueOf(&lib.Funcs).Elem()
	for i, name := range libSymbols {
		sym, err := purego.Dlsym(handle, name)
		if err != nil {
			_ = purego.Dlclose(handle)
			return nil, errors.Load("dlsym "+name, err)
		}
		purego.RegisterFunc(v.Field(i).Addr().Interface(), sym)
	}

	Logger().Debug("opened JVM library", zap.String("path", path))
	return lib, nil
}

// Close dlcloses the library. Closing a library with a live VM is undefined.
func (l *Library) Close() error {
	if l.handle == 0 {
		return nil
	}
	handle := l.handle
	l.handle = 0
	if err := purego.Dlclose(handle); err != nil {
		return errors.Load("dlclose "+l.Path, err)
	}
	return nil
}
