package log

import (
	"bytes"
	"context"
	"testing"

	contextPkg "ProjectBudget/pkg/context"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	var buf bytes.Buffer
	l := NewLogger()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})
	return &buf
}

func TestLevelFromEnv(t *testing.T) {
	assert.Equal(t, logrus.WarnLevel, levelFromEnv("warn"))
	assert.Equal(t, logrus.InfoLevel, levelFromEnv(" INFO "))
	assert.Equal(t, logrus.DebugLevel, levelFromEnv(""))
	assert.Equal(t, logrus.DebugLevel, levelFromEnv("loud"))
}

func TestErrorWithTraceIDReusesRequestID(t *testing.T) {
	buf := captureLogger(t)

	traceID := ErrorWithTraceID(Fields{"request_id": "req-42"}, "boom")

	assert.Equal(t, "req-42", traceID)
	assert.Contains(t, buf.String(), `"trace_id":"req-42"`)
}

func TestErrorWithTraceIDGeneratesID(t *testing.T) {
	buf := captureLogger(t)

	traceID := ErrorWithTraceID(nil, "boom")

	assert.Len(t, traceID, 36)
	assert.Contains(t, buf.String(), traceID)
}

func TestWithRequestID(t *testing.T) {
	captureLogger(t)

	ctx := contextPkg.WithRequestID(context.Background(), "req-7")
	assert.Equal(t, "req-7", WithRequestID(ctx).Data["request_id"])
	assert.Equal(t, "unknown", WithRequestID(context.Background()).Data["request_id"])
}
