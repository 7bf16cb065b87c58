package aggregate

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/require"

	"github.com/marshmallow-code/dashboard/internal/core/records"
)

func d(year int, month time.Month, day int) civil.Date {
	return civil.Date{Year: year, Month: month, Day: day}
}

func rec(date civil.Date, label, value string, downloads int64) records.DownloadRecord {
	return records.DownloadRecord{
		Date:          date,
		CategoryLabel: label,
		CategoryValue: value,
		Downloads:     downloads,
	}
}

func TestMajorSplitCounts(t *testing.T) {
	day := d(2019, time.July, 8)
	recs := []records.DownloadRecord{
		rec(day, records.LabelMajor, "2-no_linux", 100),
		rec(day, records.LabelMajor, "2-no_linux", 50),
		rec(day, records.LabelMajor, "3-no_linux", 600),
		rec(day, records.LabelMajor, "2", 400),
		rec(day, records.LabelMajor, "3", 900),
		rec(day, records.LabelVersion, "2.19.5-no_linux", 9999),
	}

	got := MajorSplit(recs, false, false)
	require.Equal(t, float64(150), got.MA2)
	require.Equal(t, float64(600), got.MA3)
	require.Equal(t, TitleDownloads, got.AxisTitle)
	require.Equal(t, TickCount, got.TickFormat)
}

func TestMajorSplitIncludeLinux(t *testing.T) {
	day := d(2019, time.July, 8)
	recs := []records.DownloadRecord{
		rec(day, records.LabelMajor, "2-no_linux", 100),
		rec(day, records.LabelMajor, "3-no_linux", 600),
		rec(day, records.LabelMajor, "2", 400),
		rec(day, records.LabelMajor, "3", 900),
	}

	got := MajorSplit(recs, true, false)
	require.Equal(t, float64(400), got.MA2)
	require.Equal(t, float64(900), got.MA3)
}

func TestMajorSplitPercentages(t *testing.T) {
	day := d(2019, time.July, 8)
	recs := []records.DownloadRecord{
		rec(day, records.LabelMajor, "2-no_linux", 250),
		rec(day, records.LabelMajor, "3-no_linux", 750),
	}

	got := MajorSplit(recs, false, true)
	require.InDelta(t, 0.25, got.MA2, 1e-9)
	require.InDelta(t, 0.75, got.MA3, 1e-9)
	require.InDelta(t, 1.0, got.MA2+got.MA3, 1e-9)
	require.Equal(t, TitlePercentage, got.AxisTitle)
	require.Equal(t, TickPercent, got.TickFormat)
}

func TestMajorSplitZeroTotal(t *testing.T) {
	got := MajorSplit(nil, false, true)
	require.Zero(t, got.MA2)
	require.Zero(t, got.MA3)
}
