// Package armlog is a thin slog.Handler wrapper giving the launcher and the
// emulation core a single-line, timestamped log format, in the shape of
// the pack's util/logger wrapper.
package armlog

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Handler formats each record as "time level: message attr=value ...\n" on
// a single line, mirroring the pack's LogHandler. Unlike that wrapper it
// writes to exactly one destination rather than duplicating to stderr in
// debug mode; the launcher selects the destination at construction time.
type Handler struct {
	out io.Writer
	h   slog.Handler
	mu  *sync.Mutex
}

// NewHandler wraps a slog.NewTextHandler writing to out at the given
// options, adding the single-writer/single-line discipline above.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &Handler{
		out: out,
		h:   slog.NewTextHandler(out, opts),
		mu:  &sync.Mutex{},
	}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{out: h.out, h: h.h.WithAttrs(attrs), mu: h.mu}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{out: h.out, h: h.h.WithGroup(name), mu: h.mu}
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	strs := []string{r.Time.Format("2006/01/02 15:04:05"), r.Level.String() + ":", r.Message}
	r.Attrs(func(a slog.Attr) bool {
		strs = append(strs, a.Key+"="+a.Value.String())
		return true
	})
	line := strings.Join(strs, " ") + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write([]byte(line))
	return err
}

// New returns an *slog.Logger backed by a Handler writing to out.
func New(out io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewHandler(out, &slog.HandlerOptions{Level: level}))
}
