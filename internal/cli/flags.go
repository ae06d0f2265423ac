package cli

import (
	stderrors "errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/classboard/internal/config"
	"github.com/mrz1836/classboard/internal/errors"
	"github.com/mrz1836/classboard/internal/tui"
)

// Exit codes for the CLI.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0
	// ExitError indicates a general error.
	ExitError = 1
	// ExitInvalidInput indicates invalid user input or a malformed file.
	ExitInvalidInput = 2
	// ExitBlocked indicates that the rules rejected the request.
	ExitBlocked = 3
)

// Output format constants.
const (
	// OutputText is the default human-readable output format.
	OutputText = tui.FormatText
	// OutputJSON is the machine-readable JSON output format.
	OutputJSON = tui.FormatJSON
)

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	// Output specifies the output format (text or json).
	Output string
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses non-essential output (warn level only).
	Quiet bool
	// ConfigFile replaces the project config file lookup.
	ConfigFile string
	// Today evaluates the date rules as of this date (YYYY-MM-DD).
	Today string
	// StoreDir replaces store.dir for this invocation.
	StoreDir string
	// Timezone replaces time.timezone for this invocation.
	Timezone string
	// MaxTasksPerDay replaces rules.max_tasks_per_day for this invocation.
	MaxTasksPerDay int
	// MaxTaskDays replaces rules.max_task_duration_days for this invocation.
	MaxTaskDays int
}

// ConfigOverrides returns the configuration values given on the command
// line. Unset flags stay zero and leave the loaded value in place.
func (f *GlobalFlags) ConfigOverrides() *config.Config {
	return &config.Config{
		Rules: config.RulesConfig{
			MaxTasksPerDay:      f.MaxTasksPerDay,
			MaxTaskDurationDays: f.MaxTaskDays,
		},
		Time:  config.TimeConfig{Timezone: f.Timezone},
		Store: config.StoreConfig{Dir: f.StoreDir},
	}
}

// AddGlobalFlags adds global flags to a command.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().StringVarP(&flags.Output, "output", "o", OutputText, "output format (text|json)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "config file (default .classboard/config.yaml)")
	cmd.PersistentFlags().StringVar(&flags.Today, "today", "", "evaluate the rules as of this date (YYYY-MM-DD)")
	cmd.PersistentFlags().StringVar(&flags.StoreDir, "store-dir", "", "project store directory")
	cmd.PersistentFlags().StringVar(&flags.Timezone, "timezone", "", "IANA timezone used to compute today")
	cmd.PersistentFlags().IntVar(&flags.MaxTasksPerDay, "max-tasks-per-day", 0, "override the daily start quota")
	cmd.PersistentFlags().IntVar(&flags.MaxTaskDays, "max-task-days", 0, "override the maximum task duration in days")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// BindGlobalFlags binds global flags to Viper so CLASSBOARD_OUTPUT,
// CLASSBOARD_VERBOSE and CLASSBOARD_QUIET work as defaults.
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command, flags *GlobalFlags) error {
	rootFlags := cmd.Root().PersistentFlags()
	for _, name := range []string{"output", "verbose", "quiet"} {
		if err := v.BindPFlag(name, rootFlags.Lookup(name)); err != nil {
			return err
		}
	}

	v.SetEnvPrefix(config.EnvPrefix)
	v.AutomaticEnv()

	flags.Output = v.GetString("output")
	flags.Verbose = v.GetBool("verbose")
	flags.Quiet = v.GetBool("quiet")
	return nil
}

// ValidOutputFormats returns the list of valid output format values.
func ValidOutputFormats() []string {
	return []string{OutputText, OutputJSON}
}

// IsValidOutputFormat checks if the given format is a valid output format.
func IsValidOutputFormat(format string) bool {
	for _, valid := range ValidOutputFormats() {
		if format == valid {
			return true
		}
	}
	return false
}

// blockedErrors are rule rejections, reported with ExitBlocked.
//
//nolint:gochecknoglobals // Read-only lookup table
var blockedErrors = []error{
	errors.ErrValidationBlocked,
	errors.ErrConfirmationRequired,
	errors.ErrTransitionBlocked,
	errors.ErrGroupFull,
}

// invalidInputErrors are caller mistakes, reported with ExitInvalidInput.
//
//nolint:gochecknoglobals // Read-only lookup table
var invalidInputErrors = []error{
	errors.ErrInvalidOutputFormat,
	errors.ErrInvalidArgument,
	errors.ErrConflictingFlags,
	errors.ErrMalformedInput,
	errors.ErrSnapshotInvalid,
	errors.ErrUnsupportedFormat,
	errors.ErrInvalidTransition,
	errors.ErrPathTraversal,
	errors.ErrEmptyValue,
	errors.ErrValueOutOfRange,
	errors.ErrInvalidTimezone,
}

// ExitCodeForError returns the process exit code for err.
// An explicit ExitCodeError wins. Rule rejections map to ExitBlocked and
// input mistakes, including cobra flag errors, to ExitInvalidInput.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if code, ok := errors.ExitCode(err); ok {
		return code
	}
	for _, target := range blockedErrors {
		if stderrors.Is(err, target) {
			return ExitBlocked
		}
	}
	for _, target := range invalidInputErrors {
		if stderrors.Is(err, target) {
			return ExitInvalidInput
		}
	}
	if isInvalidInputError(err.Error()) {
		return ExitInvalidInput
	}
	return ExitError
}

// isInvalidInputError catches cobra's built-in flag and argument errors.
func isInvalidInputError(errMsg string) bool {
	invalidInputPatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"invalid argument",
		"if any flags in the group",
		"at least one of the flags in the group",
		"required flag",
		"unknown command",
		"accepts ",
		"requires at least",
	}

	for _, pattern := range invalidInputPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
