package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordingWithoutApplication(t *testing.T) {
	ctx := context.Background()

	// All recording helpers are no-ops when no application is injected.
	RecordEvent(ctx, "MyEvent", map[string]interface{}{"key": "value"})
	RecordCount(ctx, "my_count", 1)
	RecordDuration(ctx, "my_duration", time.Second)
}

func TestRecordingWithApplication(t *testing.T) {
	app, err := newrelic.NewApplication(newrelic.ConfigEnabled(false))
	require.NoError(t, err)

	ctx := InjectNewRelic(context.Background(), app)

	value := ctx.Value(NewRelicContextKey)
	require.NotNil(t, value)
	assert.Equal(t, app, value.(*newrelic.Application))

	RecordEvent(ctx, "MyEvent", map[string]interface{}{"key": "value"})
	RecordCount(ctx, "my_count", 1)
	RecordDuration(ctx, "my_duration", time.Second)
}

func TestTraceMethodCallWithoutTransaction(t *testing.T) {
	tracer := TraceMethodCall(context.Background(), "my.struct", "MyMethod")
	require.Nil(t, tracer)

	// All tracer methods are safe on a nil tracer.
	tracer.AddAttribute("key", "value")
	tracer.AddAttributes(map[string]interface{}{"key": "value"})
	tracer.OnError(assert.AnError)
	tracer.End()
}
