package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jward/arbor/internal/config"
)

func main() {
	a := newApp()
	if err := a.root().Execute(); err != nil {
		if !a.errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

// app holds the state one CLI invocation shares between commands: flag
// values, the resolved config and the logger.
type app struct {
	flagFormat   string
	flagConfig   string
	flagLogLevel string

	cfg    *config.Config
	logger *slog.Logger

	// errorHandled is set by outputError so main() doesn't double-print.
	errorHandled bool
}

func newApp() *app {
	return &app{
		cfg:    config.DefaultConfig(),
		logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
}

func (a *app) root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "arbor",
		Short:         "Query scene and syntax hierarchies",
		Long:          "Arbor loads a hierarchy from a scene file (YAML/JSON) or a source file (via tree-sitter) and queries children and descendants by name, tag, layer and component.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		// No Run: prints help by default.
	}

	cmd.PersistentFlags().StringVar(&a.flagFormat, "format", "", "output format: json|text (default from config, else json)")
	cmd.PersistentFlags().StringVar(&a.flagConfig, "config", "", "config file (default: nearest arbor.yaml)")
	cmd.PersistentFlags().StringVar(&a.flagLogLevel, "log-level", "", "log level: debug|info|warn|error")

	cmd.AddCommand(a.childrenCmd())
	cmd.AddCommand(a.descendantsCmd())
	cmd.AddCommand(a.treeCmd())
	cmd.AddCommand(a.layersCmd())
	cmd.AddCommand(a.animateCmd())
	cmd.AddCommand(a.collidersCmd())
	return cmd
}

// setup resolves config and logger. Flags override the config file.
func (a *app) setup(cmd *cobra.Command) error {
	if a.flagFormat != "" {
		if err := validateFormat(a.flagFormat); err != nil {
			return err
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting cwd: %w", err)
	}
	cfg, err := config.NewLoader(a.logger).Load(a.flagConfig, cwd)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.flagFormat == "" {
		a.flagFormat = cfg.Format
	}
	levelName := cfg.LogLevel
	if a.flagLogLevel != "" {
		levelName = a.flagLogLevel
	}
	level, err := config.ParseLevel(levelName)
	if err != nil {
		return err
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}
