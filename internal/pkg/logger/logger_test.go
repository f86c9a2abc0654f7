// internal/pkg/logger/logger_test.go
package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestSanitizationHandler(t *testing.T) {
	tests := []struct {
		name  string
		msg   string
		attrs []slog.Attr
		check func(*testing.T, map[string]any)
	}{
		{
			name: "masks_credentials_in_message",
			msg:  "auth-ms rejected password=hunter2",
			check: func(t *testing.T, e map[string]any) {
				assert.Equal(t, "auth-ms rejected password="+Redacted, e["msg"])
			},
		},
		{
			name:  "masks_bearer_tokens",
			msg:   "forwarding",
			attrs: []slog.Attr{slog.String("header", "Bearer eyJhbGciOi.eyJzdWIi.sig")},
			check: func(t *testing.T, e map[string]any) {
				assert.Equal(t, "Bearer "+Redacted, e["header"])
			},
		},
		{
			name:  "masks_contact_emails",
			msg:   "supplier created",
			attrs: []slog.Attr{slog.String("contact", "sales@acme.de")},
			check: func(t *testing.T, e map[string]any) {
				assert.Equal(t, Redacted, e["contact"])
			},
		},
		{
			name:  "redacts_sensitive_keys",
			msg:   "config loaded",
			attrs: []slog.Attr{slog.String("user_password", "x"), slog.Int("port", 8080)},
			check: func(t *testing.T, e map[string]any) {
				assert.Equal(t, Redacted, e["user_password"])
				assert.EqualValues(t, 8080, e["port"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := slog.New(NewSanitizationHandler(slog.NewJSONHandler(&buf, nil)))

			l.LogAttrs(context.Background(), slog.LevelInfo, tt.msg, tt.attrs...)

			tt.check(t, decodeLine(t, &buf))
		})
	}
}

func TestContextHandler_AddsContextValues(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil)))

	ctx := context.WithValue(context.Background(), ContextKeyRequestID, "req-1")
	ctx = context.WithValue(ctx, ContextKeyUserID, "warehouse")
	ctx = context.WithValue(ctx, ContextKeyStatusCode, 201)
	l.InfoContext(ctx, "workbook ingested")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "warehouse", entry["user_id"])
	assert.EqualValues(t, 201, entry["status_code"])
}

func TestNewLogger_RenamesLevelForJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &LogConfig{Level: "debug", Format: "json"}
	opts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr { return replaceAttr(cfg, groups, a) },
	}
	slog.New(slog.NewJSONHandler(&buf, opts)).Debug("ready")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "DEBUG", entry["severity"])
	assert.NotContains(t, entry, "level")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, parseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{Logger: slog.New(slog.NewJSONHandler(&buf, nil)), contextKeys: defaultContextKeys()}

	ctx := WithLogger(context.Background(), l)
	ctx = context.WithValue(ctx, ContextKeyRequestID, "req-9")
	FromContext(ctx).Info("hello")

	assert.Equal(t, "req-9", decodeLine(t, &buf)["request_id"])
}

func TestLogger_WithContext_SkipsWhenChainEnriches(t *testing.T) {
	l := NewLogger(&LogConfig{Level: "info", Format: "json"})
	ctx := context.WithValue(context.Background(), ContextKeyUploadKey, "uploads/2026-10-17/a.xlsx")
	assert.Same(t, l.Logger, l.WithContext(ctx))

	plain := &Logger{Logger: l.Logger, contextKeys: defaultContextKeys()}
	assert.NotSame(t, l.Logger, plain.WithContext(ctx))
}

func TestLogger_WithContext_DefaultKeys(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	ctx := context.WithValue(context.Background(), ContextKeyUserID, "warehouse")
	ctx = context.WithValue(ctx, ContextKeyTaskID, "task-1")
	l.WithContext(ctx).Info("request_completed")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "warehouse", entry["user_id"])
	assert.Equal(t, "task-1", entry["task_id"])
}

func TestSamplingHandler_KeepsWarnings(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewSamplingHandler(slog.NewJSONHandler(&buf, nil), 0))

	l.Info("dropped")
	assert.Zero(t, buf.Len())

	l.Warn("stock recount skipped")
	entry := decodeLine(t, &buf)
	assert.Equal(t, "stock recount skipped", entry["msg"])
	assert.NotContains(t, entry, "sample_rate")
}

func TestReplaceAttr_DurationsInMilliseconds(t *testing.T) {
	var buf bytes.Buffer
	cfg := &LogConfig{Format: "json"}
	opts := &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr { return replaceAttr(cfg, groups, a) },
	}
	slog.New(slog.NewJSONHandler(&buf, opts)).Info("ingest finished", slog.Duration("duration", 1500*time.Microsecond))

	assert.EqualValues(t, 1.5, decodeLine(t, &buf)["duration_ms"])
}

func TestPrettyTextHandler(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewPrettyTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	l.Debug("hidden")
	assert.Zero(t, buf.Len())

	l.With(slog.String("processor", "ingest")).WithGroup("report").Info("workbook ingested", slog.Int("warehouses_created", 2))
	out := buf.String()
	assert.Contains(t, out, "workbook ingested")
	assert.Contains(t, out, "processor"+colorReset+"=ingest")
	assert.Contains(t, out, "report.warehouses_created"+colorReset+"=2")
}
