package source

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/marshmallow-code/dashboard/internal/core/records"
	"github.com/marshmallow-code/dashboard/internal/metrics"
)

const (
	breakerFailureLimit = 3
	breakerCooldown     = 30 * time.Second
)

// Breaker guards a RecordSource with a circuit breaker so a struggling
// warehouse is not hammered by every page load while it recovers. Rejected
// fetches surface as DataSourceError like any other fetch failure.
type Breaker struct {
	inner RecordSource
	cb    *gobreaker.CircuitBreaker
}

// NewBreaker wraps inner. The circuit opens after three consecutive
// failures and probes again after thirty seconds.
func NewBreaker(inner RecordSource) *Breaker {
	settings := gobreaker.Settings{
		Name:        "warehouse",
		MaxRequests: 1,
		Timeout:     breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureLimit
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("[Breaker] State changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}
	return &Breaker{inner: inner, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *Breaker) FetchDownloadRecords(ctx context.Context, w Window) ([]records.DownloadRecord, error) {
	start := time.Now()
	v, err := b.cb.Execute(func() (any, error) {
		return b.inner.FetchDownloadRecords(ctx, w)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.WarehouseFetches.WithLabelValues("rejected").Inc()
			return nil, &DataSourceError{Window: w, Err: err}
		}
		metrics.WarehouseFetches.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.WarehouseFetches.WithLabelValues("ok").Inc()
	metrics.WarehouseFetchDuration.Observe(time.Since(start).Seconds())
	return v.([]records.DownloadRecord), nil
}
