package aggregate

import (
	"sort"

	"github.com/marshmallow-code/dashboard/internal/core/records"
)

// PieBreakdown is one donut's slices: Python minor-version labels with their
// summed downloads. The renderer normalizes each donut to 100%, so raw sums
// are emitted here.
type PieBreakdown struct {
	Labels []string
	Values []int64
}

// PythonMinorGroups carries the two independent donuts.
type PythonMinorGroups struct {
	MA2 PieBreakdown
	MA3 PieBreakdown
}

// PythonMinorSplit breaks the combined dimension down by Python minor
// version, independently for each marshmallow major.
func PythonMinorSplit(recs []records.DownloadRecord, includeLinux bool) PythonMinorGroups {
	combined := records.FilterLinuxVariant(records.FilterLabel(recs, records.LabelCombined), includeLinux)
	return PythonMinorGroups{
		MA2: pieBreakdown(records.FilterValueContains(combined, "marshmallow2")),
		MA3: pieBreakdown(records.FilterValueContains(combined, "marshmallow3")),
	}
}

// pieBreakdown orders slices lexicographically on the full compound value,
// which puts "py3.10" before "py3.2". Multi-digit minors are rare enough
// that the plain string order has stuck.
func pieBreakdown(group []records.DownloadRecord) PieBreakdown {
	values := records.DistinctValues(group)
	sort.Strings(values)

	sums := make(map[string]int64, len(values))
	for _, r := range group {
		sums[r.CategoryValue] += r.Downloads
	}

	out := PieBreakdown{
		Labels: make([]string, 0, len(values)),
		Values: make([]int64, 0, len(values)),
	}
	for _, v := range values {
		out.Labels = append(out.Labels, records.PythonLabel(v))
		out.Values = append(out.Values, sums[v])
	}
	return out
}
