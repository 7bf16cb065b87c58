package aggregate

import (
	"sort"
	"time"

	"cloud.google.com/go/civil"

	"github.com/marshmallow-code/dashboard/internal/core/records"
)

// WeekPoint is one weekly bucket of summed downloads.
type WeekPoint struct {
	Week      civil.Date
	Downloads int64
}

// DownloadsByWeek buckets records into Monday-anchored weeks: each date is
// shifted back seven days, bucketed under the Monday on or after the shifted
// date, summed per bucket and sorted ascending. The trailing bucket is
// always dropped because it covers the still-accumulating current week.
func DownloadsByWeek(recs []records.DownloadRecord) []WeekPoint {
	sums := make(map[civil.Date]int64, len(recs))
	for _, r := range recs {
		sums[weekFor(r.Date)] += r.Downloads
	}

	points := make([]WeekPoint, 0, len(sums))
	for wk, n := range sums {
		points = append(points, WeekPoint{Week: wk, Downloads: n})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Week.Before(points[j].Week) })

	if len(points) == 0 {
		return points
	}
	return points[:len(points)-1]
}

// weekFor maps a record date to its weekly bucket.
func weekFor(d civil.Date) civil.Date {
	shifted := d.AddDays(-7)
	wd := shifted.In(time.UTC).Weekday()
	return shifted.AddDays((8 - int(wd)) % 7)
}

// WeeklySeries is one major version's weekly trace.
type WeeklySeries struct {
	Weeks  []civil.Date
	Values []float64
}

// WeeklyComparison carries both majors' weekly traces plus the layout hints
// that depend on the percentages toggle.
type WeeklyComparison struct {
	MA2        WeeklySeries
	MA3        WeeklySeries
	Stacked    bool
	AxisTitle  string
	TickFormat string
}

// WeeklyMajorSplit computes the week-by-week comparison of the two majors.
// In counts mode the two series are independent, so their week ranges may
// differ, and they render as grouped bars. In percentages mode only weeks
// present in both series are kept; each retained week reports the majors'
// shares of that week's pair total, rendered stacked.
func WeeklyMajorSplit(recs []records.DownloadRecord, includeLinux, percentages bool) WeeklyComparison {
	majors := records.FilterLabel(recs, records.LabelMajor)
	ma2 := DownloadsByWeek(records.FilterValue(majors, records.MajorValue(2, includeLinux)))
	ma3 := DownloadsByWeek(records.FilterValue(majors, records.MajorValue(3, includeLinux)))

	if !percentages {
		return WeeklyComparison{
			MA2:        countSeries(ma2),
			MA3:        countSeries(ma3),
			AxisTitle:  TitleDownloads,
			TickFormat: TickCount,
		}
	}

	ma3ByWeek := make(map[civil.Date]int64, len(ma3))
	for _, p := range ma3 {
		ma3ByWeek[p.Week] = p.Downloads
	}

	weeks := make([]civil.Date, 0, len(ma2))
	ma2Shares := make([]float64, 0, len(ma2))
	ma3Shares := make([]float64, 0, len(ma2))
	for _, p := range ma2 {
		n3, ok := ma3ByWeek[p.Week]
		if !ok {
			continue
		}
		total := p.Downloads + n3
		weeks = append(weeks, p.Week)
		ma2Shares = append(ma2Shares, share(p.Downloads, total))
		ma3Shares = append(ma3Shares, share(n3, total))
	}

	return WeeklyComparison{
		MA2:        WeeklySeries{Weeks: weeks, Values: ma2Shares},
		MA3:        WeeklySeries{Weeks: weeks, Values: ma3Shares},
		Stacked:    true,
		AxisTitle:  TitlePercentage,
		TickFormat: TickPercentTenths,
	}
}

func countSeries(points []WeekPoint) WeeklySeries {
	s := WeeklySeries{
		Weeks:  make([]civil.Date, 0, len(points)),
		Values: make([]float64, 0, len(points)),
	}
	for _, p := range points {
		s.Weeks = append(s.Weeks, p.Week)
		s.Values = append(s.Values, float64(p.Downloads))
	}
	return s
}
