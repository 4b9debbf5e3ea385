package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/demole/internal/ui"
)

// ─── Levels ──────────────────────────────────────────────────────────────────

// Level classifies a log record.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
	LevelSuccess
	LevelClean
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelSuccess:
		return "SUCCESS"
	case LevelClean:
		return "CLEAN"
	default:
		return "INFO"
	}
}

var levelStyles = map[Level]lipgloss.Style{
	LevelInfo:    lipgloss.NewStyle().Foreground(ui.ColorCyan),
	LevelWarn:    lipgloss.NewStyle().Foreground(ui.ColorYellow),
	LevelError:   lipgloss.NewStyle().Foreground(ui.ColorRed).Bold(true),
	LevelSuccess: lipgloss.NewStyle().Foreground(ui.ColorGreen),
	LevelClean:   lipgloss.NewStyle().Foreground(ui.ColorPink),
}

// ─── Logger ──────────────────────────────────────────────────────────────────

// Logger mirrors every record to the terminal and appends it to a session
// log file. The file handle is opened once per run and is only closed at
// process exit; each record is written directly to the unbuffered handle so
// a crash mid-run leaves a truthful partial log.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	file   *os.File
	path   string
	styled bool
}

// New opens a session log file under dir, named from the OS and a run
// timestamp (cleaner_{os}_{YYYYMMDD_HHMMSS}.log), and mirrors records to out.
func New(dir string, out io.Writer) (*Logger, error) {
	name := fmt.Sprintf("cleaner_%s_%s.log", runtime.GOOS, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open session log %s: %w", path, err)
	}

	styled := false
	if out == os.Stdout || out == os.Stderr {
		styled = ui.Colorized()
	}

	return &Logger{out: out, file: f, path: path, styled: styled}, nil
}

// Path returns the session log file location.
func (l *Logger) Path() string {
	return l.path
}

// Close releases the session log file handle.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Log appends one record: "[timestamp] [LEVEL] message" to the file and a
// styled mirror line to the terminal.
func (l *Logger) Log(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)

	if l.file != nil {
		line := fmt.Sprintf("[%s] [%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), level, msg)
		_, _ = l.file.WriteString(line)
	}

	tag := "[" + level.String() + "]"
	if l.styled {
		tag = levelStyles[level].Render(tag)
	}
	_, _ = fmt.Fprintf(l.out, "%s %s\n", tag, msg)
}

func (l *Logger) Info(format string, args ...any)    { l.Log(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...any)    { l.Log(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...any)   { l.Log(LevelError, format, args...) }
func (l *Logger) Success(format string, args ...any) { l.Log(LevelSuccess, format, args...) }
func (l *Logger) Clean(format string, args ...any)   { l.Log(LevelClean, format, args...) }
