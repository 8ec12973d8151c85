package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "slatebar"

// Metrics holds all OTEL metric instruments for slatebar.
// All counters are cumulative (monotonic) and safe for concurrent use.
type Metrics struct {
	// Render pipeline
	RenderDuration metric.Float64Histogram
	WidgetsShown   metric.Int64Counter
	WidgetsHidden  metric.Int64Counter
	WidgetsFailed  metric.Int64Counter

	// External content cache counters
	CacheHits   metric.Int64Counter
	CacheMisses metric.Int64Counter
}

// NewMetrics creates all metric instruments. Returns no-op instruments
// when no MeterProvider is registered (safe to call unconditionally).
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.RenderDuration, err = meter.Float64Histogram("render.duration",
		metric.WithDescription("End-to-end duration of a status line render"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	m.WidgetsShown, err = meter.Int64Counter("widgets.shown",
		metric.WithDescription("Widgets that produced a visible segment"))
	if err != nil {
		return nil, err
	}

	m.WidgetsHidden, err = meter.Int64Counter("widgets.hidden",
		metric.WithDescription("Widgets suppressed by empty content or a visibility rule"))
	if err != nil {
		return nil, err
	}

	m.WidgetsFailed, err = meter.Int64Counter("widgets.failed",
		metric.WithDescription("Widgets whose Produce returned an error"))
	if err != nil {
		return nil, err
	}

	m.CacheHits, err = meter.Int64Counter("cache.hits",
		metric.WithDescription("External content cache hits (fresh value reused)"))
	if err != nil {
		return nil, err
	}

	m.CacheMisses, err = meter.Int64Counter("cache.misses",
		metric.WithDescription("External content cache misses (absent, stale, or uncacheable)"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordRender records a full render pass.
func (m *Metrics) RecordRender(ctx context.Context, d time.Duration, shown, hidden, failed int64) {
	if m == nil {
		return
	}
	m.RenderDuration.Record(ctx, float64(d.Milliseconds()))
	if shown > 0 {
		m.WidgetsShown.Add(ctx, shown)
	}
	if hidden > 0 {
		m.WidgetsHidden.Add(ctx, hidden)
	}
	if failed > 0 {
		m.WidgetsFailed.Add(ctx, failed)
	}
}

// RecordCacheHit records an external content cache hit.
func (m *Metrics) RecordCacheHit(ctx context.Context, key string) {
	if m == nil {
		return
	}
	m.CacheHits.Add(ctx, 1, metric.WithAttributes(attribute.String("cache.key", key)))
}

// RecordCacheMiss records an external content cache miss.
func (m *Metrics) RecordCacheMiss(ctx context.Context, key string) {
	if m == nil {
		return
	}
	m.CacheMisses.Add(ctx, 1, metric.WithAttributes(attribute.String("cache.key", key)))
}
