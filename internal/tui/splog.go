package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Console line prefixes
const (
	warnPrefix  = "⚠️  "
	errorPrefix = "❌ "
	tipPrefix   = "💡 "
)

// consoleHandler prints bare messages, one per line. Debug lines only show
// when DEBUG is set.
type consoleHandler struct {
	w     io.Writer
	debug bool
	quiet *bool
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level > slog.LevelDebug || h.debug
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if *h.quiet {
		return nil
	}
	_, err := fmt.Fprintln(h.w, record.Message)
	return err
}

func (h *consoleHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *consoleHandler) WithGroup(string) slog.Handler      { return h }

// fanoutHandler sends each record to every handler that accepts its level
type fanoutHandler []slog.Handler

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, h := range f {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// envInt reads a non-negative integer setting, keeping def when unset or invalid
func envInt(name string, def int, allowZero bool) int {
	v, err := strconv.Atoi(os.Getenv(name))
	if err != nil || v < 0 || (v == 0 && !allowZero) {
		return def
	}
	return v
}

// rotatingFile opens the rotating run log. Sizes are in megabytes and ages in
// days; NEXTVER_LOG_MAX_SIZE, NEXTVER_LOG_MAX_BACKUPS and NEXTVER_LOG_MAX_AGE
// override the defaults.
func rotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    envInt("NEXTVER_LOG_MAX_SIZE", 1, false),
		MaxBackups: envInt("NEXTVER_LOG_MAX_BACKUPS", 2, true),
		MaxAge:     envInt("NEXTVER_LOG_MAX_AGE", 30, false),
	}
}

// Splog writes user-facing lines to the console and, when a log file is
// configured, a timestamped copy of everything (debug included) to that file.
type Splog struct {
	logger     *slog.Logger
	fileLogger *slog.Logger
	out        io.Writer
	file       io.WriteCloser
	quiet      bool
}

// NewSplog creates a console-only splog on stdout
func NewSplog() *Splog {
	splog, _ := newSplog(os.Stdout, "")
	return splog
}

// NewSplogWithWriter creates a console-only splog that writes to w
func NewSplogWithWriter(w io.Writer) *Splog {
	splog, _ := newSplog(w, "")
	return splog
}

// NewSplogWithConfig creates a stdout splog that also logs to logFilePath
func NewSplogWithConfig(logFilePath string) (*Splog, error) {
	return newSplog(os.Stdout, logFilePath)
}

func newSplog(w io.Writer, logFilePath string) (*Splog, error) {
	s := &Splog{out: w}
	handlers := fanoutHandler{&consoleHandler{w: w, debug: os.Getenv("DEBUG") != "", quiet: &s.quiet}}

	if logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file := rotatingFile(logFilePath)
		s.file = file

		fileHandler := slog.NewTextHandler(file, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String(a.Key, a.Value.Time().Format("2006-01-02 15:04:05.000"))
				}
				return a
			},
		})
		handlers = append(handlers, fileHandler)
		s.fileLogger = slog.New(fileHandler)
	}

	s.logger = slog.New(handlers)
	return s, nil
}

// SetQuiet turns console output off or on. The log file is unaffected.
func (s *Splog) SetQuiet(quiet bool) {
	s.quiet = quiet
}

// IsQuiet reports whether console output is off
func (s *Splog) IsQuiet() bool {
	return s.quiet
}

// log formats a message without treating a lone format string as a pattern
func (s *Splog) log(level slog.Level, prefix, format string, args []any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	s.logger.Log(context.Background(), level, prefix+msg)
}

// Info writes a message
// nolint // format string validation is handled in log
func (s *Splog) Info(format string, args ...any) {
	s.log(slog.LevelInfo, "", format, args)
}

// Warn writes a warning
// nolint // format string validation is handled in log
func (s *Splog) Warn(format string, args ...any) {
	s.log(slog.LevelWarn, warnPrefix, format, args)
}

// Error writes an error
// nolint // format string validation is handled in log
func (s *Splog) Error(format string, args ...any) {
	s.log(slog.LevelError, errorPrefix, format, args)
}

// Debug writes a message shown only with DEBUG set
// nolint // format string validation is handled in log
func (s *Splog) Debug(format string, args ...any) {
	s.log(slog.LevelDebug, "", format, args)
}

// Tip writes a hint for what to do next
// nolint // format string validation is handled in log
func (s *Splog) Tip(format string, args ...any) {
	s.log(slog.LevelInfo, tipPrefix, format, args)
}

// Newline writes an empty console line
func (s *Splog) Newline() {
	if s.quiet {
		return
	}
	_, _ = fmt.Fprintln(s.out)
}

// Record writes a structured entry to the log file only. It is a no-op
// without file logging.
func (s *Splog) Record(msg string, args ...any) {
	if s.fileLogger == nil {
		return
	}
	s.fileLogger.Info(msg, args...)
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}
