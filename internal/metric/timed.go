package metric

import (
	"context"
	"time"
)

// WithTiming wraps a metric so every successful measurement carries the
// wall-clock duration of the Measure call in metadata under
// "wall_time_seconds". The wrapped metric's own metadata is preserved.
func WithTiming(m Metric) Metric {
	return &timedMetric{inner: m}
}

type timedMetric struct {
	inner Metric
}

func (t *timedMetric) Setup(ctx context.Context, target Target) error {
	return t.inner.Setup(ctx, target)
}

func (t *timedMetric) Teardown(ctx context.Context, target Target) error {
	return t.inner.Teardown(ctx, target)
}

func (t *timedMetric) Measure(ctx context.Context, target Target) (Result, error) {
	start := time.Now()
	result, err := t.inner.Measure(ctx, target)
	if err != nil {
		return result, err
	}
	if result.Metadata == nil {
		result.Metadata = make(map[string]any)
	}
	result.Metadata["wall_time_seconds"] = time.Since(start).Seconds()
	return result, nil
}
