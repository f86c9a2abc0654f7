// internal/pkg/logger/handlers.go
package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"regexp"
	"strings"
	"sync"
)

// ContextHandler copies request and task values from the context onto
// each record.
type ContextHandler struct {
	next slog.Handler
	keys []ContextKey
}

func NewContextHandler(next slog.Handler) *ContextHandler {
	return &ContextHandler{next: next, keys: defaultContextKeys()}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs := extractContextAttrs(ctx, h.keys); len(attrs) > 0 {
		r = r.Clone()
		r.Add(attrs...)
	}
	return h.next.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{next: h.next.WithAttrs(attrs), keys: h.keys}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{next: h.next.WithGroup(name), keys: h.keys}
}

// SamplingHandler drops a share of records below warn. Warnings and
// errors always pass.
type SamplingHandler struct {
	next slog.Handler
	rate float64
}

func NewSamplingHandler(next slog.Handler, rate float64) *SamplingHandler {
	return &SamplingHandler{next: next, rate: rate}
}

func (h *SamplingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if !h.next.Enabled(ctx, level) {
		return false
	}
	return level >= slog.LevelWarn || rand.Float64() < h.rate
}

func (h *SamplingHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level < slog.LevelWarn {
		r.AddAttrs(slog.Float64("sample_rate", h.rate))
	}
	return h.next.Handle(ctx, r)
}

func (h *SamplingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SamplingHandler{next: h.next.WithAttrs(attrs), rate: h.rate}
}

func (h *SamplingHandler) WithGroup(name string) slog.Handler {
	return &SamplingHandler{next: h.next.WithGroup(name), rate: h.rate}
}

// Redacted replaces sanitized values
const Redacted = "***REDACTED***"

type redactRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// credentials, auth headers and contact emails of suppliers and manufacturers
var redactRules = []redactRule{
	{regexp.MustCompile(`(?i)(password|pwd|pass|secret|token|jwt|api[-_]?key)\s*[:=]\s*["']?([^"'\s]+)`), "$1=" + Redacted},
	{regexp.MustCompile(`(?i)\b(bearer|basic)\s+[A-Za-z0-9\-._~+/]+=*`), "$1 " + Redacted},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), Redacted},
}

var sensitiveKeys = []string{"password", "pwd", "secret", "token", "authorization", "jwt", "api_key"}

// SanitizationHandler masks credentials and contact emails in messages and
// string attributes, and redacts attributes with sensitive keys.
type SanitizationHandler struct {
	next slog.Handler
}

func NewSanitizationHandler(next slog.Handler) *SanitizationHandler {
	return &SanitizationHandler{next: next}
}

func (h *SanitizationHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *SanitizationHandler) Handle(ctx context.Context, r slog.Record) error {
	clean := slog.NewRecord(r.Time, r.Level, sanitize(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(sanitizeAttr(a))
		return true
	})
	return h.next.Handle(ctx, clean)
}

func (h *SanitizationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clean[i] = sanitizeAttr(a)
	}
	return &SanitizationHandler{next: h.next.WithAttrs(clean)}
}

func (h *SanitizationHandler) WithGroup(name string) slog.Handler {
	return &SanitizationHandler{next: h.next.WithGroup(name)}
}

func sanitizeAttr(a slog.Attr) slog.Attr {
	key := strings.ToLower(a.Key)
	for _, s := range sensitiveKeys {
		if strings.Contains(key, s) {
			return slog.String(a.Key, Redacted)
		}
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, sanitize(a.Value.String()))
	case slog.KindGroup:
		group := a.Value.Group()
		clean := make([]any, len(group))
		for i, ga := range group {
			clean[i] = sanitizeAttr(ga)
		}
		return slog.Group(a.Key, clean...)
	}
	return a
}

func sanitize(s string) string {
	for _, rule := range redactRules {
		s = rule.pattern.ReplaceAllString(s, rule.replacement)
	}
	return s
}

const (
	colorReset = "\033[0m"
	colorKey   = "\033[36m"
)

var levelColors = map[slog.Level]string{
	slog.LevelDebug: "\033[37m",
	slog.LevelInfo:  "\033[34m",
	slog.LevelWarn:  "\033[33m",
	slog.LevelError: "\033[31m",
}

// PrettyTextHandler writes one colored line per record for local runs
type PrettyTextHandler struct {
	opts   *slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	prefix string
	attrs  []slog.Attr
}

func NewPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyTextHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyTextHandler{opts: opts, mu: &sync.Mutex{}, w: w}
}

func (h *PrettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}
	return level >= threshold
}

func (h *PrettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	level := r.Level.String()
	fmt.Fprintf(&buf, "%s%s %-5s%s %s",
		levelColors[r.Level], r.Time.Format("2006-01-02 15:04:05.000"), level, colorReset, r.Message)

	write := func(prefix string) func(slog.Attr) bool {
		return func(a slog.Attr) bool {
			if !a.Equal(slog.Attr{}) {
				fmt.Fprintf(&buf, " %s%s%s%s=%v", colorKey, prefix, a.Key, colorReset, a.Value.Resolve())
			}
			return true
		}
	}
	for _, a := range h.attrs {
		write("")(a)
	}
	r.Attrs(write(h.prefix))
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *PrettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		next.attrs = append(next.attrs, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
	}
	return &next
}

func (h *PrettyTextHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}
