// Package dashboard serves the chart page and the figure endpoints behind
// it. Every figure is computed on demand from the current dataset snapshot;
// nothing is derived from previous renders.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/marshmallow-code/dashboard/internal/cache"
	"github.com/marshmallow-code/dashboard/internal/charts"
	"github.com/marshmallow-code/dashboard/internal/core/aggregate"
	"github.com/marshmallow-code/dashboard/internal/core/records"
	"github.com/marshmallow-code/dashboard/internal/dataset"
	"github.com/marshmallow-code/dashboard/internal/metrics"
)

// Chart names as they appear in request paths.
const (
	ChartMajors      = "majors"
	ChartWeekly      = "weekly"
	ChartVersions    = "versions"
	ChartPythonMinor = "python-minor"
)

// ErrUnknownChart marks requests for a chart name that does not exist and
// maps to HTTP 404.
var ErrUnknownChart = errors.New("unknown chart")

// ToggleState carries the per-request checkbox values. It arrives fresh on
// every request and is never persisted, so two viewers with different
// toggles cannot disturb each other.
type ToggleState struct {
	Percentages  bool `form:"percentages,default=true"`
	IncludeLinux bool `form:"include_linux,default=false"`
}

// DefaultToggles matches the initial checkbox state of the page.
func DefaultToggles() ToggleState {
	return ToggleState{Percentages: true, IncludeLinux: false}
}

// builders maps each chart name to its pure figure construction. The
// python-minor chart has no percentages mode; plotly renders pie shares
// itself.
var builders = map[string]func(recs []records.DownloadRecord, t ToggleState) *charts.Figure{
	ChartMajors: func(recs []records.DownloadRecord, t ToggleState) *charts.Figure {
		return charts.Majors(aggregate.MajorSplit(recs, t.IncludeLinux, t.Percentages))
	},
	ChartWeekly: func(recs []records.DownloadRecord, t ToggleState) *charts.Figure {
		return charts.Weekly(aggregate.WeeklyMajorSplit(recs, t.IncludeLinux, t.Percentages))
	},
	ChartVersions: func(recs []records.DownloadRecord, t ToggleState) *charts.Figure {
		return charts.Versions(aggregate.TopVersions(recs, t.IncludeLinux, t.Percentages))
	},
	ChartPythonMinor: func(recs []records.DownloadRecord, t ToggleState) *charts.Figure {
		return charts.PythonMinor(aggregate.PythonMinorSplit(recs, t.IncludeLinux))
	},
}

// ChartNames lists the served charts in page order.
func ChartNames() []string {
	return []string{ChartMajors, ChartWeekly, ChartVersions, ChartPythonMinor}
}

// Service renders figures from the cached dataset. With memoization enabled
// it also caches marshaled figures keyed by chart, toggles and dataset
// fingerprint, so a stale entry can never outlive its dataset.
type Service struct {
	data      *dataset.Provider
	figures   cache.Store
	memoize   bool
	figureTTL time.Duration
}

// NewService wires the service. store may be nil only when memoize is off.
func NewService(data *dataset.Provider, store cache.Store, memoize bool, figureTTL time.Duration) *Service {
	if data == nil {
		panic("dashboard: dataset provider must not be nil")
	}
	if memoize && store == nil {
		panic("dashboard: figure store must not be nil when memoization is on")
	}
	return &Service{
		data:      data,
		figures:   store,
		memoize:   memoize,
		figureTTL: figureTTL,
	}
}

// Figure returns the marshaled figure for one chart under the given toggles.
func (s *Service) Figure(ctx context.Context, chart string, t ToggleState) (json.RawMessage, error) {
	build, ok := builders[chart]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChart, chart)
	}

	snap, err := s.data.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if !s.memoize {
		return s.render(chart, t, snap, build)
	}

	key := figureKey(chart, t, snap.Fingerprint())
	if raw, err := s.figures.Get(ctx, key); err == nil {
		return raw, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		slog.Warn("Figure cache read failed, rendering", "chart", chart, "error", err)
	}

	raw, err := s.render(chart, t, snap, build)
	if err != nil {
		return nil, err
	}
	if err := s.figures.Set(ctx, key, raw, s.figureTTL); err != nil {
		slog.Warn("Failed to cache figure", "chart", chart, "error", err)
	}
	return raw, nil
}

func (s *Service) render(
	chart string,
	t ToggleState,
	snap *dataset.Snapshot,
	build func([]records.DownloadRecord, ToggleState) *charts.Figure,
) (json.RawMessage, error) {
	// The python-minor render is the slowest and historically the one worth
	// watching, so it logs a level up from the rest.
	logFn := slog.Debug
	if chart == ChartPythonMinor {
		logFn = slog.Info
	}
	logFn("Rendering chart",
		"chart", chart,
		"percentages", t.Percentages,
		"include_linux", t.IncludeLinux,
		"rows", len(snap.Records),
	)

	raw, err := json.Marshal(build(snap.Records, t))
	if err != nil {
		return nil, fmt.Errorf("encode %s figure: %w", chart, err)
	}
	metrics.ChartRenders.WithLabelValues(chart).Inc()
	return raw, nil
}

// Warm primes the dataset snapshot and, when memoization is on, the figure
// entries for the default toggle state. The snapshot is fetched first so the
// figure renders share one warehouse query.
func (s *Service) Warm(ctx context.Context) error {
	if _, err := s.data.Snapshot(ctx); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, chart := range ChartNames() {
		g.Go(func() error {
			_, err := s.Figure(ctx, chart, DefaultToggles())
			return err
		})
	}
	return g.Wait()
}

func figureKey(chart string, t ToggleState, fingerprint string) string {
	return fmt.Sprintf("figure:%s:p=%t:l=%t:%s", chart, t.Percentages, t.IncludeLinux, fingerprint)
}
