// Package cli provides the command-line interface for classboard.
//
// Commands load project snapshots from files or from the local store, run
// the validation engine and render its findings. Rule rejections exit with
// code 3, input mistakes with 2.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/classboard/internal/clock"
	"github.com/mrz1836/classboard/internal/config"
	"github.com/mrz1836/classboard/internal/domain"
	"github.com/mrz1836/classboard/internal/errors"
	"github.com/mrz1836/classboard/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(question, details string) (bool, error)

// app is the state shared by the commands of one invocation.
type app struct {
	flags   GlobalFlags
	cfg     *config.Config
	clock   clock.Clock
	confirm ConfirmFunc
	logger  zerolog.Logger
	logOut  io.Writer
	closer  io.Closer
}

// Option configures the root command. Options exist for tests and embedding.
type Option func(*app)

// WithConfig uses cfg instead of loading the configuration files.
func WithConfig(cfg *config.Config) Option {
	return func(a *app) { a.cfg = cfg }
}

// WithClock overrides the clock used to compute "today".
func WithClock(c clock.Clock) Option {
	return func(a *app) {
		if c != nil {
			a.clock = c
		}
	}
}

// WithConfirm overrides the interactive confirmation prompt.
func WithConfirm(fn ConfirmFunc) Option {
	return func(a *app) { a.confirm = fn }
}

// WithLogWriter sends log lines to w and disables the log file.
func WithLogWriter(w io.Writer) Option {
	return func(a *app) { a.logOut = w }
}

// terminalConfirm prompts on the terminal. A missing terminal or an aborted
// prompt counts as "no".
func terminalConfirm(question, details string) (bool, error) {
	ok, err := tui.Confirm(question, details, false)
	if stderrors.Is(err, tui.ErrMenuCanceled) {
		return false, nil
	}
	return ok, err
}

// newRootCmd creates the root command for the classboard CLI.
func newRootCmd(info BuildInfo, opts ...Option) *cobra.Command {
	a := &app{
		clock:   clock.RealClock{},
		confirm: terminalConfirm,
		closer:  nopCloser{},
	}
	for _, opt := range opts {
		opt(a)
	}
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "classboard",
		Short: "classboard - academic project rules engine",
		Long: `classboard checks the tasks and status changes of academic projects against
the planning rules: project date envelope, duplicate titles, member overlaps,
daily quota, group representation and the project and task life cycles.

Projects are read from JSON or YAML snapshots, or from the local store
(~/.classboard/projects).`,
		Version: formatVersion(info),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, v)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.closer.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, &a.flags)

	addValidateCommand(cmd, a)
	addTaskCommand(cmd, a)
	addProjectCommand(cmd, a)
	addGroupCommand(cmd, a)
	addRulesCommand(cmd, a)

	return cmd
}

// setup validates the global flags, loads the configuration and builds the
// logger. The logger is attached to the command context.
func (a *app) setup(cmd *cobra.Command, v *viper.Viper) error {
	if err := BindGlobalFlags(v, cmd, &a.flags); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	if !IsValidOutputFormat(a.flags.Output) {
		return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, a.flags.Output, ValidOutputFormats())
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if a.cfg == nil {
		cfg, err := loadConfig(ctx, a.flags.ConfigFile, a.flags.ConfigOverrides())
		if err != nil {
			return err
		}
		a.cfg = cfg
	} else {
		cfg := *a.cfg
		if err := config.ApplyOverrides(&cfg, a.flags.ConfigOverrides()); err != nil {
			return err
		}
		a.cfg = &cfg
	}
	if err := a.applyToday(); err != nil {
		return err
	}

	logOpts := LoggerOptions{
		Verbose: a.flags.Verbose,
		Quiet:   a.flags.Quiet,
		Console: a.logOut,
		Log:     a.cfg.Log,
	}
	if a.logOut == nil {
		if path, err := a.cfg.LogFile(); err == nil {
			logOpts.LogFile = path
		}
	}
	logger, closer, err := InitLogger(logOpts)
	a.logger, a.closer = logger, closer
	if err != nil {
		logger.Warn().Err(err).Msg("log file unavailable, logging to console only")
	}

	cmd.SetContext(logger.WithContext(ctx))
	return nil
}

// applyToday freezes the clock at noon of --today in the configured zone.
func (a *app) applyToday() error {
	if a.flags.Today == "" {
		return nil
	}
	d, err := domain.ParseDate(a.flags.Today)
	if err != nil {
		return fmt.Errorf("%w: --today: %w", errors.ErrInvalidArgument, err)
	}
	loc, err := a.location()
	if err != nil {
		return err
	}
	t := d.Time()
	a.clock = clock.Fixed(time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, loc))
	return nil
}

// loadConfig reads the layered configuration, or a single file when path is
// set, then applies the command-line overrides.
func loadConfig(ctx context.Context, path string, overrides *config.Config) (*config.Config, error) {
	if path == "" {
		return config.LoadWithOverrides(ctx, overrides)
	}
	globalPath, err := config.GlobalConfigPath()
	if err != nil {
		globalPath = ""
	}
	cfg, err := config.LoadFromPaths(ctx, path, globalPath)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyOverrides(cfg, overrides); err != nil {
		return nil, err
	}
	return cfg, nil
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command. Errors are printed to stderr in the
// selected output format and returned so the caller can pick the exit code
// with ExitCodeForError.
func Execute(ctx context.Context, info BuildInfo, opts ...Option) error {
	cmd := newRootCmd(info, opts...) //nolint:contextcheck // cobra passes ctx via ExecuteContext
	err := cmd.ExecuteContext(ctx)
	if err != nil && !stderrors.Is(err, errors.ErrJSONErrorOutput) {
		format := OutputText
		if f := cmd.Flag("output"); f != nil && IsValidOutputFormat(f.Value.String()) {
			format = f.Value.String()
		}
		tui.NewOutput(os.Stderr, format).Error(err)
	}
	return err
}
