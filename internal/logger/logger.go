package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogFilePath is the default log file, relative to the working directory.
const LogFilePath = "logs/demo.txt"

// maxLines bounds the in-memory history shown by the console.
const maxLines = 500

// Logger writes structured JSON lines to a file and keeps a human-readable copy of recent
// lines in memory for the console.
type Logger struct {
	z    zerolog.Logger
	file *os.File

	mu    sync.Mutex
	lines []string
}

// New returns a Logger appending to path. If the file cannot be opened, the logger still
// keeps lines in memory and the error is returned alongside it.
func New(path string) (*Logger, error) {
	l := &Logger{lines: make([]string, 0, 64)}
	console := zerolog.ConsoleWriter{
		Out:        lineSink{l},
		NoColor:    true,
		TimeFormat: "2006-01-02 15:04:05",
	}
	var out io.Writer = console
	var openErr error
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			openErr = fmt.Errorf("logger: %w", err)
		} else if f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err != nil {
			openErr = fmt.Errorf("logger: %w", err)
		} else {
			l.file = f
			out = zerolog.MultiLevelWriter(f, console)
		}
	}
	zerolog.TimeFieldFormat = time.RFC3339
	l.z = zerolog.New(out).With().Timestamp().Logger()
	return l, openErr
}

// Z returns the underlying zerolog logger for structured events.
func (l *Logger) Z() *zerolog.Logger {
	return &l.z
}

// Log records a plain line at info level (e.g. console input echo).
func (l *Logger) Log(line string) {
	l.z.Info().Msg(line)
}

// Lines returns a copy of the stored lines, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *Logger) appendLine(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
	if over := len(l.lines) - maxLines; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
}

// lineSink receives formatted console output, one or more lines per write.
type lineSink struct{ l *Logger }

func (s lineSink) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(bytes.TrimRight(p, "\n"), []byte("\n")) {
		if t := strings.TrimSpace(string(line)); t != "" {
			s.l.appendLine(t)
		}
	}
	return len(p), nil
}
