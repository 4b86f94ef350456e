/*
ucumgen is a console utility regenerating UCUM grammar artifact and mapping report.
Usage is

	ucumgen [--config <file>] [--verbose] grammar [-j | -g [-p <name>] [-v <name>]] [-w <width>] [-o <file>]
	ucumgen [--config <file>] [--verbose] mapping-report [-o <file>]

grammar writes grammar text artifact, JSON (-j), or Go source (-g) built from configured catalog;

mapping-report lists every catalog atom and how the configured registry resolves it.

Output goes to stdout unless -o is given. Configuration file is YAML or TOML,
UCUM_* environment variables override it.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ava12/ucum/config"
	"github.com/ava12/ucum/converter"
)

type app struct {
	configFile string
	verbose    bool
	config     config.Config
	log        *zap.Logger
}

func (a *app) init(*cobra.Command, []string) error {
	var e error
	a.config = config.Default()
	if a.configFile != "" {
		if a.config, e = config.LoadFile(a.configFile); e != nil {
			return e
		}
	}
	if a.config, e = a.config.WithEnv(nil); e != nil {
		return e
	}

	zc := zap.NewProductionConfig()
	level, e := a.config.Level()
	if e != nil {
		return e
	}
	if a.verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if a.log, e = zc.Build(); e != nil {
		return fmt.Errorf("failed to initialize logger: %w", e)
	}
	return nil
}

func (a *app) sync(*cobra.Command, []string) {
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func (a *app) converter() (*converter.Converter, error) {
	return converter.New(converter.WithConfig(a.config), converter.WithLogger(a.log))
}

// output runs write against named file or command output if name is empty.
func output(cmd *cobra.Command, name string, write func(w io.Writer) error) error {
	if name == "" {
		return write(cmd.OutOrStdout())
	}

	f, e := os.Create(name)
	if e != nil {
		return e
	}
	e = write(f)
	if ce := f.Close(); e == nil {
		e = ce
	}
	return e
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:               "ucumgen",
		Short:             "Regenerates UCUM grammar artifact and mapping report",
		SilenceUsage:      true,
		PersistentPreRunE: a.init,
		PersistentPostRun: a.sync,
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "configuration file (YAML or TOML)")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "log at debug level")

	root.AddCommand(newGrammarCmd(a), newReportCmd(a))
	return root
}

func main() {
	if e := newRootCmd().Execute(); e != nil {
		os.Exit(3)
	}
}
