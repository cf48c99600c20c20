package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// Options configures the process logger. Zero values fall back to env, then defaults.
type Options struct {
	// Level is a logrus level name (trace|debug|info|warn|error).
	Level string
	// File, when set, receives log lines (appended).
	File string
	// JSON switches to logrus' JSON formatter.
	JSON bool
	// Quiet discards output unless File is set. The TUI uses this so log lines never
	// land on the alternate screen.
	Quiet bool
}

var (
	mu      sync.Mutex
	root    *logrus.Logger
	closers []io.Closer
	loggers = map[string]*logrus.Entry{}
)

// Configure (re)builds the root logger. Components created before the call keep
// working: they share the root logger instance.
func Configure(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	l := rootLocked()

	levelStr := strings.TrimSpace(opts.Level)
	if levelStr == "" {
		levelStr = strings.TrimSpace(os.Getenv("WIKISPACE_LOG_LEVEL"))
	}
	if levelStr == "" {
		levelStr = "warn"
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", levelStr, err)
	}
	l.SetLevel(level)

	path := strings.TrimSpace(opts.File)
	if path == "" {
		path = strings.TrimSpace(os.Getenv("WIKISPACE_LOG_FILE"))
	}

	if opts.JSON || os.Getenv("WIKISPACE_LOG_FORMAT") == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		// Colors only when the sole sink is an interactive stderr.
		colors := path == "" && isatty.IsTerminal(os.Stderr.Fd())
		l.SetFormatter(&logrus.TextFormatter{
			DisableColors:    !colors,
			FullTimestamp:    true,
			QuoteEmptyFields: true,
		})
	}

	for _, c := range closers {
		_ = c.Close()
	}
	closers = nil

	var writers []io.Writer
	if path != "" {
		path = expandPath(path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		closers = append(closers, f)
		writers = append(writers, f)
	}
	if !opts.Quiet {
		writers = append(writers, os.Stderr)
	}

	switch len(writers) {
	case 0:
		l.SetOutput(io.Discard)
	case 1:
		l.SetOutput(writers[0])
	default:
		l.SetOutput(io.MultiWriter(writers...))
	}
	return nil
}

// NewLogger returns the logger for a component. One entry per component name.
func NewLogger(component string) *logrus.Entry {
	mu.Lock()
	defer mu.Unlock()

	if e, ok := loggers[component]; ok {
		return e
	}
	e := rootLocked().WithField("component", component)
	loggers[component] = e
	return e
}

// Discard returns an entry that drops everything. Handy default for library types.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// Close releases any log file opened by Configure.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	for _, c := range closers {
		_ = c.Close()
	}
	closers = nil
	if root != nil {
		root.SetOutput(io.Discard)
	}
}

func rootLocked() *logrus.Logger {
	if root == nil {
		root = logrus.New()
		root.SetLevel(logrus.WarnLevel)
		root.SetOutput(os.Stderr)
	}
	return root
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
