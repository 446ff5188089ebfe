// Package cli provides the handrit command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/suderio/handrit/driver"
	"github.com/suderio/handrit/internal/config"
	"github.com/suderio/handrit/internal/logging"
)

// Version information (set at build time).
var Version = "0.1.0"

var cfgFile string

// settingsKey is used to store the loaded settings in the command context.
type settingsKey struct{}

type settings struct {
	cfg      *config.Config
	logger   *slog.Logger
	closeLog func() error
}

// NewRootCmd creates and returns the root command. Without a subcommand it
// starts the REPL.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "handrit",
		Short: "handrit - expression calculator",
		Long: `handrit converts infix, prefix and postfix expressions to reverse
polish notation and evaluates them with decimal arithmetic.

Operators can be declared inline with {...}; left and right name their
operands.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			if !cfg.Color {
				color.NoColor = true
			}

			logger, closeLog, err := logging.New(logging.Options{
				Level:  cfg.LogLevel,
				File:   cfg.LogFile,
				Writer: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			if cfg.File != "" {
				logger.Debug("using config file", "path", cfg.File)
			}

			ctx := context.WithValue(cmd.Context(), settingsKey{}, &settings{
				cfg:      cfg,
				logger:   logger,
				closeLog: closeLog,
			})
			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./handrit.yaml)")
	flags.Uint32("precision", config.DefaultPrecision, "Significant digits of computed numbers")
	flags.String("log-level", config.DefaultLogLevel, "Log level (debug|info|warn|error)")
	flags.String("log-file", "", "Also write JSON logs to this file")
	flags.String("history-file", config.DefaultHistoryFile, "REPL history file")
	flags.Bool("reuse-operators", true, "Keep custom operators across REPL lines")
	flags.Bool("color", true, "Colorize error output")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newREPLCommand())
	rootCmd.AddCommand(newRPNCommand())
	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if _, err := executeRoot(rootCmd); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

// executeRoot runs rootCmd and closes the log file opened for the executed
// command, whether or not it failed.
func executeRoot(rootCmd *cobra.Command) (*cobra.Command, error) {
	cmd, err := rootCmd.ExecuteC()
	if cmd == nil || cmd.Context() == nil {
		return cmd, err
	}
	if s, ok := cmd.Context().Value(settingsKey{}).(*settings); ok {
		if closeErr := s.closeLog(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return cmd, err
}

// getSettings retrieves the settings from the command context, falling back
// to the defaults.
func getSettings(ctx context.Context) *settings {
	if s, ok := ctx.Value(settingsKey{}).(*settings); ok {
		return s
	}
	return &settings{
		cfg: &config.Config{
			Precision:      config.DefaultPrecision,
			Prompt:         config.DefaultPrompt,
			HistoryFile:    config.DefaultHistoryFile,
			ReuseOperators: true,
			LogLevel:       config.DefaultLogLevel,
		},
		logger:   slog.New(slog.DiscardHandler),
		closeLog: func() error { return nil },
	}
}

func newMachine(s *settings, reuse bool) *driver.Machine {
	return driver.NewMachine(
		driver.WithPrecision(s.cfg.Precision),
		driver.WithLogger(s.logger),
		driver.WithReuse(reuse),
	)
}

var errorColor = color.New(color.FgRed)

// printError writes err to w, one line per joined error.
func printError(w io.Writer, err error) {
	if errs, ok := err.(interface{ Unwrap() []error }); ok {
		for _, err := range errs.Unwrap() {
			_, _ = errorColor.Fprintf(w, "Error: %v\n", err)
		}
		return
	}
	_, _ = errorColor.Fprintf(w, "Error: %v\n", err)
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display handrit version information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "handrit v%s\n", version)
		},
	}
}
