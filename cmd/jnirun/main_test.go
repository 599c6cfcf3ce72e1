package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/jni-runtime/errors"
	"github.com/wippyai/jni-runtime/internal/jvmtest"
	"github.com/wippyai/jni-runtime/types"
	"github.com/wippyai/jni-runtime/vm"
)

func fakeJVM(t *testing.T) *jvmtest.JVM {
	t.Helper()
	j := jvmtest.New()
	j.DefineClass("demo/Calc", "java/lang/Object").
		StaticMethod("add", "(II)I", func(c *jvmtest.Call) types.Value {
			return types.IntValue(c.Args[0].Int() + c.Args[1].Int())
		}).
		StaticMethod("greet", "(Ljava/lang/String;)Ljava/lang/String;", func(c *jvmtest.Call) types.Value {
			return c.NewString("hi " + c.Arg(0).Text)
		}).
		StaticMethod("initial", "(Ljava/lang/String;)C", func(c *jvmtest.Call) types.Value {
			return types.CharValue(types.Jchar(c.Arg(0).Text[0]))
		}).
		StaticMethod("fail", "()V", func(c *jvmtest.Call) types.Value {
			return c.Throw("java/lang/IllegalStateException", "nope")
		})

	prev := openLibrary
	openLibrary = func(string) (*vm.Library, error) {
		return vm.NewLibrary(j.LibFuncs(), vm.WithBinder(j)), nil
	}
	t.Cleanup(func() { openLibrary = prev })
	t.Setenv("CLASSPATH", "")
	return j
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"jnirun", "--logfmt", "none"}, args...))
	return out.String(), err
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		format, level string
		wantErr       bool
	}{
		{"none", "whatever", false},
		{"text", "debug", false},
		{"json", "info", false},
		{"text", "loud", true},
		{"xml", "info", true},
	}
	for _, tt := range tests {
		t.Run(tt.format+"/"+tt.level, func(t *testing.T) {
			logger, err := newLogger(tt.format, tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestSig(t *testing.T) {
	out, err := run(t, "sig", "(ILjava/lang/String;)V", "()[J")
	require.NoError(t, err)
	assert.Contains(t, out, "(ILjava/lang/String;)V\t")
	assert.Contains(t, out, "()[J\t")

	_, err = run(t, "sig", "(I")
	assert.ErrorIs(t, err, errors.ErrInvalid)
}

func TestCall(t *testing.T) {
	j := fakeJVM(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"int", []string{"demo/Calc", "add", "(II)I", "2", "40"}, "42\n"},
		{"dotted class", []string{"demo.Calc", "add", "(II)I", "7", "8"}, "15\n"},
		{"string", []string{"demo/Calc", "greet", "(Ljava/lang/String;)Ljava/lang/String;", "bob"}, "\"hi bob\"\n"},
		{"char", []string{"demo/Calc", "initial", "(Ljava/lang/String;)C", "zed"}, "'z'\n"},
		{"void", []string{"demo/Calc", "fail", "()V"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"--libjvm", "fake", "call"}, tt.args...)...)
			if tt.name == "void" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "java.lang.IllegalStateException: nope")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
			assert.False(t, j.Created(), "VM destroyed after the command")
		})
	}

	t.Run("missing class", func(t *testing.T) {
		_, err := run(t, "--libjvm", "fake", "call", "no/Such", "run", "()V")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "java.lang.NoClassDefFoundError: no/Such")
	})

	t.Run("argument count", func(t *testing.T) {
		_, err := run(t, "--libjvm", "fake", "call", "demo/Calc", "add", "(II)I", "1")
		assert.ErrorIs(t, err, &errors.Error{Kind: errors.KindInvalidInput})
	})

	t.Run("options", func(t *testing.T) {
		_, err := run(t, "--libjvm", "fake", "--cp", "app.jar", "--option=-Xmx512M", "call", "demo/Calc", "add", "(II)I", "1", "1")
		require.NoError(t, err)
		assert.Equal(t, []string{"-Djava.class.path=app.jar", "-Xmx512M"}, j.Options())
	})

	t.Run("bad version", func(t *testing.T) {
		_, err := run(t, "--libjvm", "fake", "--jni-version", "1.3", "call", "demo/Calc", "add", "(II)I", "1", "1")
		assert.Error(t, err)
	})
}

func TestVersionCommand(t *testing.T) {
	fakeJVM(t)
	out, err := run(t, "--libjvm", "fake", "version")
	require.NoError(t, err)
	assert.Equal(t, "JNI 21 (0x150000)\n", out)
}

func TestVMsCommand(t *testing.T) {
	fakeJVM(t)
	out, err := run(t, "--libjvm", "fake", "vms")
	require.NoError(t, err)
	assert.Equal(t, "0 VM(s)\n", out)
}

func TestLibraryDiscovery(t *testing.T) {
	fakeJVM(t)
	t.Setenv("JNIRUN_LIBJVM", "")

	t.Setenv("JAVA_HOME", "")
	_, err := run(t, "version")
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindNotInitialized})

	home := t.TempDir()
	t.Setenv("JAVA_HOME", home)
	_, err = run(t, "version")
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindNotFound})

	name := "libjvm.so"
	switch runtime.GOOS {
	case "darwin":
		name = "libjvm.dylib"
	case "windows":
		name = "jvm.dll"
	}
	lib := filepath.Join(home, "lib", "server", name)
	require.NoError(t, os.MkdirAll(filepath.Dir(lib), 0o755))
	require.NoError(t, os.WriteFile(lib, nil, 0o644))
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "JNI 21 (0x150000)\n", out)
}
