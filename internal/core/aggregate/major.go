package aggregate

import "github.com/marshmallow-code/dashboard/internal/core/records"

// MajorTotals compares the two marshmallow major versions over the whole
// window: absolute download counts, or each major's share of the pair total.
type MajorTotals struct {
	MA2        float64
	MA3        float64
	AxisTitle  string
	TickFormat string
}

// MajorSplit sums downloads for the two major versions. The linux toggle
// selects between the raw and no_linux encodings of the major dimension;
// percentages normalizes each major by the pair total. A zero pair total
// yields zero shares for both majors.
func MajorSplit(recs []records.DownloadRecord, includeLinux, percentages bool) MajorTotals {
	majors := records.FilterLabel(recs, records.LabelMajor)
	ma2 := records.SumDownloads(records.FilterValue(majors, records.MajorValue(2, includeLinux)))
	ma3 := records.SumDownloads(records.FilterValue(majors, records.MajorValue(3, includeLinux)))

	if percentages {
		total := ma2 + ma3
		return MajorTotals{
			MA2:        share(ma2, total),
			MA3:        share(ma3, total),
			AxisTitle:  TitlePercentage,
			TickFormat: TickPercent,
		}
	}
	return MajorTotals{
		MA2:        float64(ma2),
		MA3:        float64(ma3),
		AxisTitle:  TitleDownloads,
		TickFormat: TickCount,
	}
}
