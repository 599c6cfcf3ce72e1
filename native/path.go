package native

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/wippyai/jni-runtime/errors"
)

// Library is an opened JVM shared library with its bootstrap symbols bound.
type Library struct {
	Funcs  LibFuncs
	Path   string
	handle uintptr
}

// DefaultLibraryPath locates libjvm under javaHome, or $JAVA_HOME when empty.
// It returns the conventional path when none exists, and "" without a home.
func DefaultLibraryPath(javaHome string) string {
	path, err := FindLibrary(javaHome)
	if err != nil {
		if candidates := libraryCandidates(javaHome); len(candidates) > 0 {
			return candidates[0]
		}
		return ""
	}
	return path
}

// FindLibrary returns the first existing libjvm under javaHome, or $JAVA_HOME
// when empty.
func FindLibrary(javaHome string) (string, error) {
	candidates := libraryCandidates(javaHome)
	if len(candidates) == 0 {
		return "", errors.NotInitialized(errors.PhaseLoad, "JAVA_HOME")
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", errors.NotFound(errors.PhaseLoad, "JVM library", candidates[0])
}

func libraryCandidates(javaHome string) []string {
	if javaHome == "" {
		javaHome = os.Getenv("JAVA_HOME")
	}
	if javaHome == "" {
		return nil
	}

	name := "libjvm.so"
	switch runtime.GOOS {
	case "darwin":
		name = "libjvm.dylib"
	case "windows":
		name = "jvm.dll"
	}

	return []string{
		filepath.Join(javaHome, "lib", "server", name),
		filepath.Join(javaHome, "jre", "lib", "server", name),
		filepath.Join(javaHome, "bin", "server", name),
	}
}
