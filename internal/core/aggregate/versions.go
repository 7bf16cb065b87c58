package aggregate

import (
	"sort"

	"github.com/marshmallow-code/dashboard/internal/core/records"
)

// topVersionCount caps the ranking.
const topVersionCount = 10

// RankedVersions lists the most-downloaded specific versions, ascending by
// value so the largest bar renders at the top of a horizontal layout.
type RankedVersions struct {
	Labels     []string
	Values     []float64
	AxisTitle  string
	TickFormat string
}

// TopVersions ranks specific versions by summed downloads and keeps the top
// ten, ties preserving first-seen order. The result is emitted smallest
// first. Percentages normalize by the sum of the selected ten only, not by
// the grand total, so the shares of a full chart add up to one.
func TopVersions(recs []records.DownloadRecord, includeLinux, percentages bool) RankedVersions {
	versions := records.FilterLinuxVariant(records.FilterLabel(recs, records.LabelVersion), includeLinux)

	order := records.DistinctValues(versions)
	sums := make(map[string]int64, len(order))
	for _, r := range versions {
		sums[r.CategoryValue] += r.Downloads
	}

	sort.SliceStable(order, func(i, j int) bool { return sums[order[i]] > sums[order[j]] })
	if len(order) > topVersionCount {
		order = order[:topVersionCount]
	}
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	var selectedTotal int64
	for _, v := range order {
		selectedTotal += sums[v]
	}

	out := RankedVersions{
		Labels:     make([]string, 0, len(order)),
		Values:     make([]float64, 0, len(order)),
		AxisTitle:  TitleDownloads,
		TickFormat: TickCount,
	}
	if percentages {
		out.AxisTitle = TitlePercentage
		out.TickFormat = TickPercentTenths
	}
	for _, v := range order {
		out.Labels = append(out.Labels, records.VersionLabel(v))
		if percentages {
			out.Values = append(out.Values, share(sums[v], selectedTotal))
		} else {
			out.Values = append(out.Values, float64(sums[v]))
		}
	}
	return out
}
