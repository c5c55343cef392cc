package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"defcompose/internal/compose"
	"defcompose/internal/config"
	"defcompose/internal/defs"
	"defcompose/internal/diagnostic"
	"defcompose/internal/model"
)

var errStrict = errors.New("warnings reported in strict mode")

// app is the state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	log    *log.Logger
	stdout io.Writer
	stderr io.Writer
}

// flagKeys maps command flags onto config keys.
var flagKeys = map[string]string{
	"strict":              config.KeyStrict,
	"output":              config.KeyOutput,
	"merge-default-first": config.KeyMergeDefaultFirst,
	"log-level":           config.KeyLogLevel,
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "defcompose",
		Short: "Compose system, shared and local definitions",
		Long: `defcompose merges a local definition with the system definition and the
shared field groups it includes, producing one field tree and one layout.
It also splits a composed definition back into its local part.

Definitions are YAML files. Settings come from --config, DEFCOMPOSE_*
environment variables and flags, in increasing priority.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (YAML)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.Bool("strict", false, "fail when warnings are reported")
	pf.StringP("output", "o", "", "output file, - for standard output")
	pf.Bool("merge-default-first", false, "expand local default UI sets before overlaying")

	root.AddCommand(newMergeCommand(a))
	root.AddCommand(newDemergeCommand(a))
	root.AddCommand(newCheckCommand(a))

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, func(v *viper.Viper) error {
		for name, key := range flagKeys {
			if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}

	if a.verbose {
		level = log.DebugLevel
	}

	a.cfg = cfg
	a.log = log.NewWithOptions(a.stderr, log.Options{Prefix: "defcompose", Level: level})

	return nil
}

func (a *app) composer() *compose.Composer {
	return compose.New(compose.Config{
		MergeDefaultFirst: a.cfg.MergeDefaultFirst,
		Logger:            a.log,
		Validator:         defs.NodeValidator{},
	})
}

// tierFiles names the input files of one command.
type tierFiles struct {
	system string
	shared string
}

func (f *tierFiles) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.system, "system", "", "system definition file")
	cmd.Flags().StringVar(&f.shared, "shared", "", "shared definition file")
}

// load reads the system and shared tiers. Missing files mean empty tiers.
func (f *tierFiles) load() (*model.SystemDef, *model.SharedDef, error) {
	var (
		sys    *model.SystemDef
		shared = &model.SharedDef{}
		err    error
	)

	if f.system != "" {
		if sys, err = defs.LoadSystem(f.system); err != nil {
			return nil, nil, err
		}
	}

	if f.shared != "" {
		if shared, err = defs.LoadShared(f.shared); err != nil {
			return nil, nil, err
		}
	}

	return sys, shared, nil
}

// report fails on errors, and on warnings in strict mode. The composer
// has already logged its own findings.
func (a *app) report(d diagnostic.Diagnostics) error {
	if err := d.Error(); err != nil {
		return err
	}

	if a.cfg.Strict && len(d.Warnings) > 0 {
		return fmt.Errorf("%w: %d warning(s)", errStrict, len(d.Warnings))
	}

	return nil
}

// write serializes def to the configured output.
func (a *app) write(def *model.Definition) error {
	if !a.cfg.ToStdout() {
		if err := defs.WriteFile(def, a.cfg.Output); err != nil {
			return err
		}

		a.log.Info("definition written", "path", a.cfg.Output)

		return nil
	}

	data, err := defs.Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to marshal definition: %w", err)
	}

	_, err = a.stdout.Write(data)

	return err
}
