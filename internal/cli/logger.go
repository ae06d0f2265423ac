package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrz1836/classboard/internal/config"
	"github.com/mrz1836/classboard/internal/logging"
)

const logDirPerm = 0o750

// zerologConfigOnce ensures zerolog global settings are configured exactly once.
var zerologConfigOnce sync.Once //nolint:gochecknoglobals // One-time configuration

// configureZerologGlobals sets the field names used in every log line.
func configureZerologGlobals() {
	zerologConfigOnce.Do(func() {
		zerolog.TimestampFieldName = "ts"
		zerolog.MessageFieldName = "event"
	})
}

// LoggerOptions controls InitLogger.
type LoggerOptions struct {
	Verbose bool
	Quiet   bool

	// Console receives human-facing log lines. Nil selects stderr.
	Console io.Writer

	// Log configures the rotating file. Ignored when Disabled is set.
	Log config.LogConfig

	// LogFile is the resolved file path. Empty disables the file.
	LogFile string
}

// InitLogger creates the CLI logger. Lines go to the console and, when a log
// file is configured, to a rotating file with personal data redacted. The
// returned closer releases the file and is never nil.
//
// Log levels:
//   - verbose: Debug
//   - quiet: Warn
//   - default: Info
//
// The console gets a ConsoleWriter on a color TTY and JSON otherwise. A log
// file that cannot be opened is reported as an error next to a working
// console-only logger.
func InitLogger(opts LoggerOptions) (zerolog.Logger, io.Closer, error) {
	configureZerologGlobals()

	console := opts.Console
	if console == nil {
		console = selectOutput()
	}

	var (
		writer io.Writer = console
		closer io.Closer = nopCloser{}
		err    error
	)
	if !opts.Log.Disabled && opts.LogFile != "" {
		var file io.WriteCloser
		file, err = createLogFileWriter(opts.LogFile, opts.Log)
		if err == nil {
			writer = zerolog.MultiLevelWriter(console, file)
			closer = file
		}
	}

	logger := zerolog.New(writer).
		Level(selectLevel(opts.Verbose, opts.Quiet)).
		Hook(logging.NewSensitiveDataHook()).
		With().Timestamp().Logger()
	return logger, closer, err
}

// selectLevel determines the log level from the flags. Verbose wins.
func selectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// selectOutput picks the console writer: pretty on a color TTY, JSON otherwise.
func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" { //nolint:gosec // fd fits in int
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}

// createLogFileWriter opens a rotating log file wrapped with redaction.
func createLogFileWriter(path string, cfg config.LogConfig) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), logDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	return logging.NewFilteringWriteCloser(lj), nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
