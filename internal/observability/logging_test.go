package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerAddsContextValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, true)

	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), 7)
	logger.InfoContext(ctx, "vote cast", "idea_id", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "vote cast", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, float64(7), entry["user_id"])
	assert.Equal(t, float64(3), entry["idea_id"])
	assert.Equal(t, "req-1", RequestID(ctx))
}

func TestLoggerWithoutContextValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, true).With("component", "test")
	logger.Info("plain")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry, "request_id")
	assert.Equal(t, "test", entry["component"])
}

func TestRecordCredits(t *testing.T) {
	before := testutil.ToFloat64(CreditsMoved.WithLabelValues("test_action", "in"))
	RecordCredits("test_action", 2)
	RecordCredits("test_action", 0)
	assert.Equal(t, before+2, testutil.ToFloat64(CreditsMoved.WithLabelValues("test_action", "in")))

	RecordCredits("test_action", -3)
	assert.GreaterOrEqual(t, testutil.ToFloat64(CreditsMoved.WithLabelValues("test_action", "out")), float64(3))
}
