//go:build !(darwin || freebsd || linux || netbsd)

package native

import "github.com/wippyai/jni-runtime/errors"

// Open is not supported on this platform.
func Open(path string) (*Library, error) {
	return nil, errors.Unsupported(errors.PhaseLoad, "dynamic loading on this platform")
}

// Close is a no-op on this platform.
func (l *Library) Close() error {
	return nil
}
