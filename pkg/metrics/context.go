package metrics

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
)

type nrContextKey string

// NewRelicContextKey is the context key under which the New Relic application
// is injected for custom metric and event recording.
const NewRelicContextKey nrContextKey = "new-relic-application"

// InjectNewRelic returns a context carrying the New Relic application so
// downstream code can record custom metrics and events against it.
func InjectNewRelic(ctx context.Context, app *newrelic.Application) context.Context {
	return context.WithValue(ctx, NewRelicContextKey, app)
}
