package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ariel-frischer/setedit/internal/build"
	"github.com/ariel-frischer/setedit/internal/config"
	clierrors "github.com/ariel-frischer/setedit/internal/errors"
	"github.com/ariel-frischer/setedit/internal/logging"
	"github.com/ariel-frischer/setedit/internal/output"
	"github.com/ariel-frischer/setedit/internal/store"
	"github.com/spf13/cobra"
)

const scriptUsage = "Usage:\n  setedit --help\n  setedit file [command] [args]"

// rootOptions holds the parsed global flags.
type rootOptions struct {
	configPath string
	verbosity  int
	noColor    bool
	initConfig bool
}

// NewRootCmd builds the setedit command. Each call returns an independent
// command so tests can run it with their own streams.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "setedit [flags] <settings-file> [command] [args...]",
		Short: "Interactive editor for name=value settings files",
		Long: `setedit lists, reads, writes, adds, deletes and repairs entries of a flat
name=value settings file.

With only a file it starts an interactive prompt. With a command after the
file it runs that one command and exits. A missing settings file is created.

Commands: help [command], list, fix, get <name>, set <name=value>,
add <name=value>, delete <name>, exit.

Exit status: 0 success, 1 the command reported a problem, 2 the settings
file could not be opened, read or written.`,
		Example: `  # Interactive session
  setedit app.conf

  # One-shot commands
  setedit app.conf list
  setedit app.conf set greeting=hello world
  setedit app.conf fix

  # Flags go before the settings file
  setedit --no-color -vv app.conf get greeting`,
		Version:       build.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts, args)
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a setedit config file (YAML or JSON)")
	cmd.Flags().CountVarP(&opts.verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug, -vvv trace)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&opts.initConfig, "init-config", false, "Write a commented config file (to --config or the user config path) and exit")
	cmd.SetVersionTemplate("setedit " + build.Info())

	return cmd
}

// Execute runs the root command against the process streams and returns
// the exit status.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return ExecuteContext(ctx, NewRootCmd(), os.Args[1:])
}

// ExecuteContext runs cmd with args and converts the outcome to an exit
// status.
func ExecuteContext(ctx context.Context, cmd *cobra.Command, args []string) int {
	// cobra falls back to os.Args when given nil.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Flag parsing failures never reach RunE.
	cliErr := clierrors.NewValidationErrorWithUsage(err.Error(), cmd.UseLine())
	clierrors.FprintError(cmd.ErrOrStderr(), cliErr, false)
	return ExitProblem
}

func runRoot(cmd *cobra.Command, opts *rootOptions, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if opts.initConfig {
		return initConfig(stdout, stderr, opts.configPath)
	}

	if len(args) == 0 {
		return fail(stderr, clierrors.SettingsFileRequired(scriptUsage), false)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		path := opts.configPath
		if path == "" {
			path = config.UserConfigPath()
		}
		return fail(stderr, clierrors.ConfigParseError(path, err), false)
	}

	useColor := output.ColorEnabled(cfg.Color, terminalCapabilities(stdout), opts.noColor)
	printer := output.NewPrinter(stdout, useColor)

	logger, closeLog, err := logging.Setup(logging.Options{
		Level:     cfg.LogLevel,
		Verbosity: opts.verbosity,
		File:      cfg.LogFile,
		Console:   stderr,
		NoColor:   !useColor,
	})
	if err != nil {
		return fail(stderr, clierrors.WrapWithMessage(err, clierrors.Configuration, "failed to set up logging"), useColor)
	}
	defer closeLog()

	path := args[0]
	st, err := store.Open(path,
		store.WithLogger(logging.Component(logger, "store")),
		store.WithRewriteUnchanged(cfg.RewriteUnchanged),
	)
	if err != nil {
		return fail(stderr, environmentError(err, path), useColor)
	}
	defer st.Close()

	if st.Created() {
		printer.Printf("Settings file '%s' not found\n", st.Path())
		printer.Println("Creating it...")
	}

	session := NewSession(st, printer, SessionOptions{
		Prompt: cfg.Prompt,
		Banner: cfg.Banner,
		Logger: logging.Component(logger, "session"),
	})

	if len(args) > 1 {
		err = session.Execute(ctx, strings.Join(args[1:], " "))
	} else {
		err = session.Run(ctx, cmd.InOrStdin())
	}

	switch {
	case errors.Is(err, context.Canceled):
		printer.Println("exit")
	case err != nil:
		return fail(stderr, environmentError(err, path), useColor)
	}
	return exitStatus(session.Status())
}

// initConfig writes the default config template unless the file exists.
func initConfig(stdout, stderr io.Writer, path string) error {
	if path == "" {
		path = config.UserConfigPath()
	}
	created, err := config.WriteDefaultConfig(path)
	if err != nil {
		return fail(stderr, clierrors.WrapWithMessage(err, clierrors.Environment, "failed to write config file"), false)
	}
	if !created {
		fmt.Fprintf(stdout, "Config file '%s' already exists\n", path)
		return &ExitError{Code: ExitProblem}
	}
	fmt.Fprintf(stdout, "Created config file '%s'\n", path)
	return nil
}

// fail prints err and returns the matching ExitError.
func fail(w io.Writer, err *clierrors.CLIError, useColor bool) error {
	clierrors.FprintError(w, err, useColor)
	return &ExitError{Code: exitCode(err)}
}

func exitStatus(status int) error {
	if status == ExitSuccess {
		return nil
	}
	return &ExitError{Code: status}
}

// terminalCapabilities inspects w when it is a real file.
func terminalCapabilities(w io.Writer) output.TerminalCapabilities {
	if f, ok := w.(*os.File); ok {
		return output.DetectTerminalCapabilities(f)
	}
	return output.TerminalCapabilities{}
}
