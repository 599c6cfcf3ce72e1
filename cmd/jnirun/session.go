package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/wippyai/jni-runtime/env"
	"github.com/wippyai/jni-runtime/native"
	"github.com/wippyai/jni-runtime/types"
	"github.com/wippyai/jni-runtime/vm"
)

// openLibrary loads the JVM library. Tests replace it.
var openLibrary = func(path string) (*vm.Library, error) {
	return vm.Open(path)
}

// session is a running VM and the Env of the thread that created it.
type session struct {
	lib *vm.Library
	vm  *vm.VM
	env *env.Env
}

func config(c *cli.Context) (*vm.Config, error) {
	version, err := types.ParseVersion(c.String("jni-version"))
	if err != nil {
		return nil, err
	}
	cfg := vm.DefaultConfig()
	cfg.Version = version
	if cp := c.String("classpath"); cp != "" {
		cfg.Options = append(cfg.Options, "-Djava.class.path="+cp)
	}
	cfg.Options = append(cfg.Options, c.StringSlice("option")...)
	return cfg, nil
}

func library(c *cli.Context) (*vm.Library, error) {
	path := c.Path("libjvm")
	if path == "" {
		var err error
		if path, err = native.FindLibrary(""); err != nil {
			return nil, fmt.Errorf("no JVM library, set --libjvm or JAVA_HOME: %w", err)
		}
	}
	lib, err := openLibrary(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return lib, nil
}

// start creates a VM from the global flags. The caller must close it on the
// same goroutine.
func start(c *cli.Context) (*session, error) {
	cfg, err := config(c)
	if err != nil {
		return nil, err
	}
	lib, err := library(c)
	if err != nil {
		return nil, err
	}
	machine, e, err := lib.Create(cfg)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("create VM: %w", err), lib.Close())
	}
	return &session{lib: lib, vm: machine, env: e}, nil
}

func (s *session) Close() error {
	return s.lib.Close()
}
