package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"cloud.google.com/go/civil"

	"github.com/marshmallow-code/dashboard/internal/core/records"
)

// staticColumns are the required CSV header names; extra columns are
// ignored so exports with an index column still load.
var staticColumns = []string{"date", "category_label", "category_value", "downloads"}

// Static serves records from a local CSV export. It is the offline
// development path: no credentials, no network, stable data. The window is
// ignored and the file is served whole.
type Static struct {
	path string
}

// NewStatic wraps the CSV file at path. The file is re-read on every fetch,
// which the snapshot cache in front of it makes a non-issue.
func NewStatic(path string) *Static {
	return &Static{path: path}
}

// FetchDownloadRecords loads and validates the whole file. The date column
// holds ISO dates (2019-07-08).
func (s *Static) FetchDownloadRecords(ctx context.Context, w Window) ([]records.DownloadRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, &DataSourceError{Window: w, Err: fmt.Errorf("open static data: %w", err)}
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, &DataSourceError{Window: w, Err: fmt.Errorf("read header: %w", err)}
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range staticColumns {
		if _, ok := cols[name]; !ok {
			return nil, &DataSourceError{Window: w, Err: fmt.Errorf("missing column %q", name)}
		}
	}

	var recs []records.DownloadRecord
	for line := 2; ; line++ {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &DataSourceError{Window: w, Err: fmt.Errorf("line %d: %w", line, err)}
		}

		date, err := civil.ParseDate(fields[cols["date"]])
		if err != nil {
			return nil, &DataSourceError{Window: w, Err: fmt.Errorf("line %d: parse date: %w", line, err)}
		}
		downloads, err := strconv.ParseInt(fields[cols["downloads"]], 10, 64)
		if err != nil {
			return nil, &DataSourceError{Window: w, Err: fmt.Errorf("line %d: parse downloads: %w", line, err)}
		}

		rec := records.DownloadRecord{
			Date:          date,
			CategoryLabel: fields[cols["category_label"]],
			CategoryValue: fields[cols["category_value"]],
			Downloads:     downloads,
		}
		if err := rec.Validate(); err != nil {
			return nil, &DataSourceError{Window: w, Err: fmt.Errorf("line %d: %w", line, err)}
		}
		recs = append(recs, rec)
	}

	slog.Info("[Static] Loaded download records", "rows", len(recs), "path", s.path)
	return recs, nil
}
