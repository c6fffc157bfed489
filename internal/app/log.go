package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// logFileName is the log file created under the configured log_dir.
const logFileName = "shelfsend.log"

// sessionHandler is a custom slog.Handler that formats log records as:
//
//	<timestamp>\t<level>\t<sessionID>\t<message>\t<key=value ...>
//
// Records are written with a single Write so lines from the shutdown hook
// and the session loop never interleave.
type sessionHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	sessionID string
	level     slog.Leveler
	attrs     []slog.Attr
}

func newSessionHandler(w io.Writer, sessionID string, level slog.Leveler) *sessionHandler {
	return &sessionHandler{mu: &sync.Mutex{}, w: w, sessionID: sessionID, level: level}
}

func (h *sessionHandler) Enabled(_ context.Context, level slog.Level) bool {
	if h.level == nil {
		return true
	}
	return level >= h.level.Level()
}

func (h *sessionHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	ts := r.Time.UTC().Format("2006-01-02T15:04:05Z")
	fmt.Fprintf(&buf, "%s\t%s\t%s\t%s", ts, r.Level.String(), h.sessionID, r.Message)

	for _, a := range h.attrs {
		fmt.Fprintf(&buf, "\t%s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&buf, "\t%s=%v", a.Key, a.Value)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *sessionHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sessionHandler{
		mu:        h.mu,
		w:         h.w,
		sessionID: h.sessionID,
		level:     h.level,
		attrs:     append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *sessionHandler) WithGroup(string) slog.Handler { return h }

// newLogger creates a structured logger that writes to logDir/shelfsend.log
// and, when echo is non-nil, to echo as well.
// It returns the slog.Logger, the open log file (for cleanup), and any error.
func newLogger(logDir, sessionID string, level slog.Leveler, echo io.Writer) (*slog.Logger, *os.File, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	logPath := filepath.Join(logDir, logFileName)
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	var w io.Writer = f
	if echo != nil {
		w = io.MultiWriter(f, echo)
	}
	return slog.New(newSessionHandler(w, sessionID, level)), f, nil
}

// slogAdapter wraps *slog.Logger to satisfy the shelf.Logger interface.
type slogAdapter struct {
	l *slog.Logger
}

func (a *slogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }
func (a *slogAdapter) Info(msg string, args ...any)  { a.l.Info(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.l.Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }
