package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/wippyai/jni-runtime/env"
	"github.com/wippyai/jni-runtime/errors"
	"github.com/wippyai/jni-runtime/signature"
	"github.com/wippyai/jni-runtime/types"
)

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print the JNI version of the VM",
		Action: func(c *cli.Context) error {
			s, err := start(c)
			if err != nil {
				return err
			}
			defer s.Close()

			v, err := s.env.GetVersion()
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "JNI %s (%#x)\n", v, uint32(v))
			return nil
		},
	}
}

func vmsCommand() *cli.Command {
	return &cli.Command{
		Name:  "vms",
		Usage: "list VMs already created in this process",
		Action: func(c *cli.Context) error {
			lib, err := library(c)
			if err != nil {
				return err
			}
			defer lib.Close()

			vms, err := lib.Created()
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "%d VM(s)\n", len(vms))
			for _, v := range vms {
				fmt.Fprintf(c.App.Writer, "  %#x\n", uintptr(v.Ptr()))
			}
			return nil
		},
	}
}

func callCommand() *cli.Command {
	return &cli.Command{
		Name:      "call",
		Usage:     "call a static method and print its result",
		ArgsUsage: "<class> <method> <signature> [args...]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 3 {
				return cli.ShowSubcommandHelp(c)
			}
			s, err := start(c)
			if err != nil {
				return err
			}
			defer s.Close()

			args := c.Args().Slice()
			out, err := callStatic(s.env, args[0], args[1], args[2], args[3:])
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, out)
			return nil
		},
	}
}

func sigCommand() *cli.Command {
	return &cli.Command{
		Name:      "sig",
		Usage:     "parse method signatures",
		ArgsUsage: "<signature>...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.ShowSubcommandHelp(c)
			}
			for _, sig := range c.Args().Slice() {
				plan, err := signature.Parse(sig)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "%s\t%s\n", sig, plan)
			}
			return nil
		},
	}
}

// callStatic resolves class.method with sig, converts args and renders the
// result. A thrown exception is rendered as "ClassName: message".
func callStatic(e *env.Env, class, method, sig string, args []string) (string, error) {
	plan, err := signature.Parse(sig)
	if err != nil {
		return "", err
	}

	cls, err := e.FindClass(strings.ReplaceAll(class, ".", "/"))
	if err != nil {
		return "", describe(e, err)
	}
	defer e.DeleteLocalRef(cls)

	m, err := e.LookupStaticMethod(cls, method, sig)
	if err != nil {
		return "", describe(e, err)
	}

	values, err := signature.Marshal(plan, args, e.NewGoString)
	if err != nil {
		return "", err
	}
	v, err := e.Invoke(types.Null, m, values...)
	if err != nil {
		return "", describe(e, err)
	}
	return render(e, plan.Return, v)
}

func render(e *env.Env, k types.Kind, v types.Value) (string, error) {
	if k != types.KindString {
		return signature.Format(k, v), nil
	}
	obj := v.Object()
	if obj.IsNull() {
		return "null", nil
	}
	defer e.DeleteLocalRef(obj)
	s, err := e.GoString(obj)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%q", s), nil
}

// describe replaces a thrown exception with its class name and message.
func describe(e *env.Env, err error) error {
	thr, ok := errors.AsThrowable(err)
	if !ok {
		return err
	}
	name, msg, derr := e.Describe(thr)
	if derr != nil {
		return err
	}
	if msg == "" {
		return fmt.Errorf("%s: %s", thr.Op, name)
	}
	return fmt.Errorf("%s: %s: %s", thr.Op, name, msg)
}
