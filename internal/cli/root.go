// Package cli implements the streamtasks command line, a local host for the task script.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"streamtasks/internal/config"
	"streamtasks/internal/exitcode"
	"streamtasks/internal/host"
)

// Version is the application version. Set at build time.
var Version = "0.1.0"

// Env holds the standard streams.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// exitError carries an exit code through cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// app is shared state for one command line invocation.
type app struct {
	env       Env
	configDir string
	logLevel  string
}

func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.configDir)
	if err != nil {
		return nil, withCode(exitcode.ConfigError, err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	return cfg, nil
}

func (a *app) logger(cfg *config.Config) *log.Logger {
	logger := host.NewLogger(a.env.Stderr, cfg.LogLevel)
	if cfg.HasFile() {
		logger.Debug("loaded config", "path", cfg.Path())
	} else {
		logger.Debug("no config file, using defaults", "path", cfg.Path())
	}
	return logger
}

// NewRootCmd builds the command tree writing to env.
func NewRootCmd(env Env) *cobra.Command {
	a := &app{env: env}

	root := &cobra.Command{
		Use:   "streamtasks",
		Short: "Per-user chat tasks for streams",
		Long: `streamtasks runs the task list script the way the streaming host does:
chat commands add, edit, complete, undo and remove per-user tasks kept in a JSON file,
and an overlay shows the list on stream.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}
	root.SetIn(env.Stdin)
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)

	root.PersistentFlags().StringVar(&a.configDir, "config", "", "Override config directory")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(newRunCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newManifestCmd(a))
	root.AddCommand(newVersionCmd(a))
	return root
}

// Run executes the command line and returns the exit code.
func Run(ctx context.Context, args []string, env Env) int {
	root := NewRootCmd(env)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitcode.Success
	}

	fmt.Fprintf(env.Stderr, "error: %s\n", err)
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	// Cobra's own errors: unknown command, bad flags, wrong arg count.
	return exitcode.UserError
}
