// Package source fetches the raw download-count table that every chart is
// derived from.
package source

import (
	"context"
	"fmt"

	"github.com/marshmallow-code/dashboard/internal/core/records"
)

// Window is the trailing fetch range in whole days ending today.
type Window struct {
	Days int
}

// RecordSource is implemented by the BigQuery warehouse client and the
// static CSV fixture. A fetch returns the full window every time; there is
// no incremental path.
type RecordSource interface {
	FetchDownloadRecords(ctx context.Context, w Window) ([]records.DownloadRecord, error)
}

// DataSourceError marks a failed fetch. Handlers map it to 503 so a broken
// warehouse reads as an upstream outage, not a dashboard bug.
type DataSourceError struct {
	Window Window
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("fetch download records (trailing %d days): %v", e.Window.Days, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }
