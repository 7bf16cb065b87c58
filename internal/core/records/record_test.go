package records

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/require"
)

func TestDownloadRecordValidate(t *testing.T) {
	valid := DownloadRecord{
		Date:          civil.Date{Year: 2019, Month: 7, Day: 8},
		CategoryLabel: LabelMajor,
		CategoryValue: "3-no_linux",
		Downloads:     1200,
	}

	tests := []struct {
		name    string
		mutate  func(r *DownloadRecord)
		wantErr string
	}{
		{
			name:   "valid row",
			mutate: func(r *DownloadRecord) {},
		},
		{
			name:    "invalid date",
			mutate:  func(r *DownloadRecord) { r.Date = civil.Date{} },
			wantErr: "invalid date",
		},
		{
			name:    "unknown label",
			mutate:  func(r *DownloadRecord) { r.CategoryLabel = "python_major" },
			wantErr: "unknown category_label",
		},
		{
			name:    "empty value",
			mutate:  func(r *DownloadRecord) { r.CategoryValue = "" },
			wantErr: "empty category_value",
		},
		{
			name:    "negative downloads",
			mutate:  func(r *DownloadRecord) { r.Downloads = -1 },
			wantErr: "negative downloads",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := valid
			tc.mutate(&r)
			err := r.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestVersionLabel(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"3.12.1-no_linux", "3.12.1"},
		{"2.19.5", "2.19.5"},
		{"py3.7-marshmallow3-no_linux", "py3.7"},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			require.Equal(t, tc.want, VersionLabel(tc.value))
		})
	}
}

func TestPythonLabel(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"py3.7-marshmallow3-no_linux", "3.7"},
		{"py2.7-marshmallow2", "2.7"},
		{"py3.10-marshmallow3", "3.10"},
	}

	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			require.Equal(t, tc.want, PythonLabel(tc.value))
		})
	}
}

func TestMajorValue(t *testing.T) {
	require.Equal(t, "2", MajorValue(2, true))
	require.Equal(t, "3", MajorValue(3, true))
	require.Equal(t, "2-no_linux", MajorValue(2, false))
	require.Equal(t, "3-no_linux", MajorValue(3, false))
}

func TestHasNoLinuxSuffix(t *testing.T) {
	require.True(t, HasNoLinuxSuffix("3-no_linux"))
	require.True(t, HasNoLinuxSuffix("py3.7-marshmallow3-no_linux"))
	require.False(t, HasNoLinuxSuffix("3"))
	require.False(t, HasNoLinuxSuffix("no_linux-3"))
}
