package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/jni-runtime/callback"
	"github.com/wippyai/jni-runtime/env"
	"github.com/wippyai/jni-runtime/native"
	"github.com/wippyai/jni-runtime/vm"
)

func newFlags() []cli.Flag {
	return []cli.Flag{
		&cli.PathFlag{
			Name:        "libjvm",
			Usage:       "load the JVM from `path`",
			EnvVars:     []string{"JNIRUN_LIBJVM"},
			DefaultText: "$JAVA_HOME/lib/server",
		},
		&cli.StringFlag{
			Name:    "jni-version",
			Usage:   "request JNI `version` (1.8, 9, 21, ...)",
			Value:   "1.8",
			EnvVars: []string{"JNIRUN_JNI_VERSION"},
		},
		&cli.StringSliceFlag{
			Name:    "option",
			Aliases: []string{"X"},
			Usage:   "pass `opt` to the VM, such as -Xmx512M",
		},
		&cli.StringFlag{
			Name:    "classpath",
			Aliases: []string{"cp"},
			Usage:   "set java.class.path to `path`",
			EnvVars: []string{"CLASSPATH"},
		},
		&cli.StringFlag{
			Name:    "logfmt",
			Aliases: []string{"f"},
			Usage:   "`format` logs as text, json or none",
			Value:   "text",
			EnvVars: []string{"JNIRUN_LOGFMT"},
		},
		&cli.StringFlag{
			Name:    "loglvl",
			Usage:   "set logging `level` to debug, info, warn or error",
			Value:   "warn",
			EnvVars: []string{"JNIRUN_LOGLVL"},
		},
	}
}

func newCommands() []*cli.Command {
	return []*cli.Command{
		versionCommand(),
		vmsCommand(),
		callCommand(),
		sigCommand(),
		inspectCommand(),
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "jnirun",
		Usage:     "drive a Java VM through JNI",
		UsageText: "jnirun [global options] command [command options] [arguments...]",
		Flags:     newFlags(),
		Commands:  newCommands(),
		Before:    setupLogging,
	}
}

func setupLogging(c *cli.Context) error {
	logger, err := newLogger(c.String("logfmt"), c.String("loglvl"))
	if err != nil {
		return err
	}
	native.SetLogger(logger.Named("native"))
	env.SetLogger(logger.Named("env"))
	vm.SetLogger(logger.Named("vm"))
	callback.SetLogger(logger.Named("callback"))
	return nil
}

func newLogger(format, level string) (*zap.Logger, error) {
	if format == "none" {
		return zap.NewNop(), nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var cfg zap.Config
	switch format {
	case "json":
		cfg = zap.NewProductionConfig()
	case "text":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
