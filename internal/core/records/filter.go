package records

import "strings"

// FilterLabel returns the rows whose CategoryLabel equals label.
// All filters allocate fresh slices; the input is never mutated.
func FilterLabel(recs []DownloadRecord, label string) []DownloadRecord {
	out := make([]DownloadRecord, 0, len(recs))
	for _, r := range recs {
		if r.CategoryLabel == label {
			out = append(out, r)
		}
	}
	return out
}

// FilterValue returns the rows whose CategoryValue equals value exactly.
func FilterValue(recs []DownloadRecord, value string) []DownloadRecord {
	out := make([]DownloadRecord, 0, len(recs))
	for _, r := range recs {
		if r.CategoryValue == value {
			out = append(out, r)
		}
	}
	return out
}

// FilterLinuxVariant selects between the two encodings of a dimension:
// includeLinux keeps only values without the no_linux suffix (raw counts,
// CI downloads included), otherwise only values with it. A value stream
// never mixes variants within one chart.
func FilterLinuxVariant(recs []DownloadRecord, includeLinux bool) []DownloadRecord {
	out := make([]DownloadRecord, 0, len(recs))
	for _, r := range recs {
		if HasNoLinuxSuffix(r.CategoryValue) != includeLinux {
			out = append(out, r)
		}
	}
	return out
}

// FilterValueContains returns the rows whose CategoryValue contains substr.
func FilterValueContains(recs []DownloadRecord, substr string) []DownloadRecord {
	out := make([]DownloadRecord, 0, len(recs))
	for _, r := range recs {
		if strings.Contains(r.CategoryValue, substr) {
			out = append(out, r)
		}
	}
	return out
}

// SumDownloads totals the download counts. Zero on empty input.
func SumDownloads(recs []DownloadRecord) int64 {
	var total int64
	for _, r := range recs {
		total += r.Downloads
	}
	return total
}

// DistinctValues returns the distinct CategoryValues in first-seen order.
func DistinctValues(recs []DownloadRecord) []string {
	seen := make(map[string]struct{}, len(recs))
	values := make([]string, 0, len(recs))
	for _, r := range recs {
		if _, ok := seen[r.CategoryValue]; ok {
			continue
		}
		seen[r.CategoryValue] = struct{}{}
		values = append(values, r.CategoryValue)
	}
	return values
}
