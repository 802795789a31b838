package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestTraceHandler_AddsSpanIDs(t *testing.T) {
	t.Setenv("ENV", "prod")

	var buf bytes.Buffer
	log := newWithWriter(&buf)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	log.InfoContext(ctx, "quiz generated", "internship_id", 3)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "quiz generated", record["msg"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", record["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", record["span_id"])
}

func TestTraceHandler_NoSpan(t *testing.T) {
	t.Setenv("ENV", "prod")

	var buf bytes.Buffer
	newWithWriter(&buf).Info("plain")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.NotContains(t, record, "trace_id")
}

func TestColorHandler_ErrorIsRed(t *testing.T) {
	t.Setenv("ENV", "local")

	var buf bytes.Buffer
	newWithWriter(&buf).Error("storage down")

	assert.Contains(t, buf.String(), "\x1b[31mstorage down\x1b[0m")
}
