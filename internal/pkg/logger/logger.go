// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ContextKey names a request or task value copied onto every record
type ContextKey string

const (
	ContextKeyRequestID  ContextKey = "request_id"
	ContextKeyTraceID    ContextKey = "trace_id"
	ContextKeyUserID     ContextKey = "user_id"
	ContextKeyClientIP   ContextKey = "client_ip"
	ContextKeyUserAgent  ContextKey = "user_agent"
	ContextKeyMethod     ContextKey = "method"
	ContextKeyPath       ContextKey = "path"
	ContextKeyStatusCode ContextKey = "status_code"

	// set by the worker while a queued workbook is processed
	ContextKeyTaskID    ContextKey = "task_id"
	ContextKeyUploadKey ContextKey = "upload_key"
)

// LogConfig holds logger configuration
type LogConfig struct {
	Level          string
	Format         string
	Output         string
	AddSource      bool
	SampleRate     float64
	ServiceName    string
	ServiceVersion string
	Environment    string
}

// Logger is the process logger plus the context keys it lifts into records
type Logger struct {
	*slog.Logger
	contextKeys []ContextKey
	// set when the handler chain already lifts context values
	enriched bool
}

var defaultLogger *Logger

// SetupLogger builds the process logger and installs it as the slog default.
// LOG_SAMPLE_RATE below 1 samples debug and info records.
func SetupLogger(level string, format string) *Logger {
	cfg := &LogConfig{
		Level:          level,
		Format:         format,
		Output:         "stdout",
		AddSource:      strings.EqualFold(level, "debug"),
		SampleRate:     envFloat("LOG_SAMPLE_RATE", 1),
		ServiceName:    envOr("SERVICE_NAME", "warehouse-ms"),
		ServiceVersion: os.Getenv("SERVICE_VERSION"),
		Environment:    os.Getenv("APP_ENV"),
	}

	l := NewLogger(cfg)
	defaultLogger = l
	slog.SetDefault(l.Logger)
	return l
}

// NewLogger assembles the handler chain: format, context enrichment,
// optional sampling, then sanitization outermost.
func NewLogger(cfg *LogConfig) *Logger {
	if cfg == nil {
		cfg = &LogConfig{Level: "info", Format: "json", Output: "stdout"}
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.AddSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			return replaceAttr(cfg, groups, a)
		},
	}

	w := writer(cfg.Output)
	var h slog.Handler
	if cfg.Format == "text" {
		h = NewPrettyTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	h = NewContextHandler(h)
	if cfg.SampleRate > 0 && cfg.SampleRate < 1 {
		h = NewSamplingHandler(h, cfg.SampleRate)
	}
	h = NewSanitizationHandler(h)

	var static []slog.Attr
	if cfg.ServiceName != "" {
		static = append(static, slog.String("service", cfg.ServiceName))
	}
	if cfg.ServiceVersion != "" {
		static = append(static, slog.String("version", cfg.ServiceVersion))
	}
	if cfg.Environment != "" {
		static = append(static, slog.String("env", cfg.Environment))
	}
	if len(static) > 0 {
		h = h.WithAttrs(static)
	}

	return &Logger{Logger: slog.New(h), contextKeys: defaultContextKeys(), enriched: true}
}

// WithContext returns a logger carrying the context values as attributes.
// A Logger without its own keys lifts the default ones.
func (l *Logger) WithContext(ctx context.Context) *slog.Logger {
	if l.enriched {
		return l.Logger
	}
	keys := l.contextKeys
	if keys == nil {
		keys = defaultContextKeys()
	}
	if attrs := extractContextAttrs(ctx, keys); len(attrs) > 0 {
		return l.Logger.With(attrs...)
	}
	return l.Logger
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func writer(output string) io.Writer {
	if output == "stderr" {
		return os.Stderr
	}
	return os.Stdout
}

func defaultContextKeys() []ContextKey {
	return []ContextKey{
		ContextKeyRequestID,
		ContextKeyTraceID,
		ContextKeyUserID,
		ContextKeyClientIP,
		ContextKeyUserAgent,
		ContextKeyMethod,
		ContextKeyPath,
		ContextKeyStatusCode,
		ContextKeyTaskID,
		ContextKeyUploadKey,
	}
}

func extractContextAttrs(ctx context.Context, keys []ContextKey) []any {
	var attrs []any
	for _, key := range keys {
		switch v := ctx.Value(key).(type) {
		case nil:
		case string:
			if v != "" {
				attrs = append(attrs, slog.String(string(key), v))
			}
		case int:
			attrs = append(attrs, slog.Int(string(key), v))
		case int64:
			attrs = append(attrs, slog.Int64(string(key), v))
		default:
			attrs = append(attrs, slog.Any(string(key), v))
		}
	}
	return attrs
}

func replaceAttr(cfg *LogConfig, _ []string, a slog.Attr) slog.Attr {
	switch {
	case a.Key == slog.TimeKey:
		if t, ok := a.Value.Any().(time.Time); ok {
			a.Value = slog.StringValue(t.UTC().Format(time.RFC3339Nano))
		}
	case a.Key == slog.LevelKey && cfg.Format == "json":
		a.Key = "severity"
	case a.Value.Kind() == slog.KindDuration:
		a.Key += "_ms"
		a.Value = slog.Float64Value(float64(a.Value.Duration().Microseconds()) / 1000)
	}
	return a
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

type loggerKey struct{}

// FromContext returns the logger stored by WithLogger, or the process
// logger, enriched with the context values.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*Logger); ok {
		return l.WithContext(ctx)
	}
	if defaultLogger == nil {
		defaultLogger = NewLogger(nil)
	}
	return defaultLogger.WithContext(ctx)
}

// WithLogger stores l in ctx
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}
