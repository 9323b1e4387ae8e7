package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// LogNotifier writes toasts to a structured logger
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier logging through logger, or slog.Default when nil
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// Notify logs the toast
func (n *LogNotifier) Notify(ctx context.Context, t Toast) {
	level := slog.LevelInfo
	if t.Icon == IconError || t.Icon == IconWarning {
		level = slog.LevelWarn
	}
	n.logger.Log(ctx, level, "toast",
		slog.String("icon", string(t.Icon)),
		slog.String("title", t.Title),
		slog.String("text", t.Text),
		slog.Int("timer_ms", t.Timer),
	)
}

// WriterNotifier prints toasts as single lines, for terminals
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterNotifier creates a notifier printing to w
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

// Notify prints the toast
func (n *WriterNotifier) Notify(_ context.Context, t Toast) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if t.Text != "" {
		_, _ = fmt.Fprintf(n.w, "[%s] %s: %s\n", t.Icon, t.Title, t.Text)
		return
	}
	_, _ = fmt.Fprintf(n.w, "[%s] %s\n", t.Icon, t.Title)
}

// Recorder keeps every toast it receives
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

// Notify records the toast
func (r *Recorder) Notify(_ context.Context, t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

// Toasts returns the recorded toasts in arrival order
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Toast, len(r.toasts))
	copy(out, r.toasts)
	return out
}

// Len returns the number of recorded toasts
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.toasts)
}
