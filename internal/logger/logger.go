// Package logger is a small colored level logger. One Logger is created per
// CLI invocation and passed to the components that report progress.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorGray   = "\033[90m"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Options configures a Logger. Out and Err default to stdout and stderr.
type Options struct {
	Verbose bool
	Quiet   bool
	NoColor bool
	Out     io.Writer
	Err     io.Writer
	// Now overrides the timestamp clock.
	Now func() time.Time
}

// Logger is safe for concurrent use. Its settings are fixed by New.
type Logger struct {
	verbose bool
	quiet   bool
	color   bool
	now     func() time.Time
	loggers map[Level]*log.Logger
	success *log.Logger
}

// New returns a Logger. Color is disabled by NoColor or a non-empty NO_COLOR
// environment variable.
func New(opts Options) *Logger {
	out, errw := opts.Out, opts.Err
	if out == nil {
		out = os.Stdout
	}
	if errw == nil {
		errw = os.Stderr
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	l := &Logger{
		verbose: opts.Verbose,
		quiet:   opts.Quiet,
		color:   !opts.NoColor && os.Getenv("NO_COLOR") == "",
		now:     now,
		loggers: make(map[Level]*log.Logger, 4),
		success: log.New(out, "", 0),
	}
	for level := DEBUG; level < ERROR; level++ {
		l.loggers[level] = log.New(out, "", 0)
	}
	l.loggers[ERROR] = log.New(errw, "", 0)
	return l
}

// Discard returns a Logger that writes nowhere.
func Discard() *Logger {
	return New(Options{Out: io.Discard, Err: io.Discard, NoColor: true})
}

func (l *Logger) levelColor(level Level) string {
	switch level {
	case DEBUG:
		return ColorGray
	case INFO:
		return ColorBlue
	case WARN:
		return ColorYellow
	case ERROR:
		return ColorRed
	default:
		return ColorReset
	}
}

func (l *Logger) paint(color, s string) string {
	if !l.color {
		return s
	}
	return color + s + ColorReset
}

func (l *Logger) format(label, color, message string) string {
	timestamp := l.now().Format("06-01-02 15:04:05")
	return fmt.Sprintf("%s %s %s",
		l.paint(ColorGray, "["+timestamp+"]"),
		l.paint(color, fmt.Sprintf("%-5s", label)),
		message,
	)
}

func (l *Logger) enabled(level Level) bool {
	switch {
	case level == ERROR:
		return true
	case l.quiet:
		return false
	case level == DEBUG:
		return l.verbose
	default:
		return true
	}
}

func (l *Logger) log(level Level, format string, args ...any) {
	if !l.enabled(level) {
		return
	}
	message := fmt.Sprintf(format, args...)
	l.loggers[level].Println(l.format(level.String(), l.levelColor(level), message))
}

func (l *Logger) Debug(format string, args ...any) { l.log(DEBUG, format, args...) }

func (l *Logger) Info(format string, args ...any) { l.log(INFO, format, args...) }

func (l *Logger) Warn(format string, args ...any) { l.log(WARN, format, args...) }

func (l *Logger) Error(format string, args ...any) { l.log(ERROR, format, args...) }

// Success logs at info level with an OK label.
func (l *Logger) Success(format string, args ...any) {
	if !l.enabled(INFO) {
		return
	}
	l.success.Println(l.format("OK", ColorGreen, fmt.Sprintf(format, args...)))
}
