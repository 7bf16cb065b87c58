package records

import (
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
)

// Category labels identify the aggregation dimension a row belongs to.
// The warehouse emits exactly these three; anything else is a contract
// violation caught at the fetch boundary.
const (
	LabelMajor    = "marshmallow_major"
	LabelVersion  = "marshmallow_version"
	LabelCombined = "combined"
)

// noLinuxSuffix marks precomputed variants that already exclude downloads
// attributed to Linux CI platforms.
const noLinuxSuffix = "no_linux"

// DownloadRecord is one row of the raw download-count table.
// A (date, label, value) triple is NOT unique — the warehouse may return
// several rows per bucket, so every downstream aggregation sums across
// duplicates.
type DownloadRecord struct {
	Date          civil.Date `json:"date"           bigquery:"date"`
	CategoryLabel string     `json:"category_label" bigquery:"category_label"`
	CategoryValue string     `json:"category_value" bigquery:"category_value"`
	Downloads     int64      `json:"downloads"      bigquery:"downloads"`
}

// Validate enforces the fixed warehouse contract. It runs once per row at
// the data-source boundary; aggregators may assume rows are well formed.
func (r DownloadRecord) Validate() error {
	if !r.Date.IsValid() {
		return fmt.Errorf("invalid date %v", r.Date)
	}
	switch r.CategoryLabel {
	case LabelMajor, LabelVersion, LabelCombined:
	default:
		return fmt.Errorf("unknown category_label %q", r.CategoryLabel)
	}
	if r.CategoryValue == "" {
		return fmt.Errorf("empty category_value")
	}
	if r.Downloads < 0 {
		return fmt.Errorf("negative downloads %d", r.Downloads)
	}
	return nil
}

// HasNoLinuxSuffix reports whether value names a no_linux variant.
func HasNoLinuxSuffix(value string) bool {
	return strings.HasSuffix(value, noLinuxSuffix)
}

// VersionLabel extracts the version component of a compound category value:
// the segment before the first dash. "3.12.1-no_linux" → "3.12.1".
func VersionLabel(value string) string {
	label, _, _ := strings.Cut(value, "-")
	return label
}

// PythonLabel extracts the Python minor-version label from a combined
// category value: the leading segment with its "py" prefix characters
// trimmed. "py3.7-marshmallow3-no_linux" → "3.7".
func PythonLabel(value string) string {
	return strings.TrimLeft(VersionLabel(value), "py")
}

// MajorValue builds the category value that selects one major version under
// the given linux toggle: MajorValue(2, false) → "2-no_linux".
func MajorValue(major int, includeLinux bool) string {
	v := strconv.Itoa(major)
	if !includeLinux {
		v += "-" + noLinuxSuffix
	}
	return v
}
