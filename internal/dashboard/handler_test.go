package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	httperr "github.com/marshmallow-code/dashboard/internal/core/errors"
	"github.com/marshmallow-code/dashboard/internal/source"
)

func newTestRouter(src source.RecordSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	newTestService(src, nil, false).RegisterRoutes(r)
	return r
}

func TestHandleChartStatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		src            source.RecordSource
		expectedStatus int
		expectedType   string
	}{
		{
			name:           "valid chart returns 200",
			url:            "/v1/charts/majors",
			src:            &stubSource{recs: fixtureRecords()},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown chart returns 404",
			url:            "/v1/charts/histogram",
			src:            &stubSource{recs: fixtureRecords()},
			expectedStatus: http.StatusNotFound,
			expectedType:   httperr.HttpUnknownChartError,
		},
		{
			name:           "malformed toggle returns 400",
			url:            "/v1/charts/majors?percentages=banana",
			src:            &stubSource{recs: fixtureRecords()},
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpInvalidQueryError,
		},
		{
			name: "warehouse outage returns 503",
			url:  "/v1/charts/majors",
			src: &stubSource{err: &source.DataSourceError{
				Window: source.Window{Days: 30},
				Err:    errors.New("quota exceeded"),
			}},
			expectedStatus: http.StatusServiceUnavailable,
			expectedType:   httperr.HttpDataSourceError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(tc.src)

			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)

			require.Equal(t, tc.expectedStatus, resp.Code, "body: %s", resp.Body.String())
			if tc.expectedType == "" {
				return
			}
			var body httperr.ErrorResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			require.Equal(t, tc.expectedType, body.ErrorType)
		})
	}
}

func TestHandleChartDefaultToggles(t *testing.T) {
	r := newTestRouter(&stubSource{recs: fixtureRecords()})

	// No query parameters: percentages defaults on, linux off.
	req := httptest.NewRequest(http.MethodGet, "/v1/charts/majors", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Header().Get("Content-Type"), "application/json")
	require.Contains(t, resp.Body.String(), `"tickformat":"%"`)

	req = httptest.NewRequest(http.MethodGet, "/v1/charts/majors?percentages=false", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"tickformat":",d"`)
}

func TestHandleChartFigureShape(t *testing.T) {
	r := newTestRouter(&stubSource{recs: fixtureRecords()})

	req := httptest.NewRequest(http.MethodGet, "/v1/charts/python-minor?include_linux=false", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var fig struct {
		Data []struct {
			Type   string   `json:"type"`
			Labels []string `json:"labels"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &fig))
	require.Len(t, fig.Data, 2)
	require.Equal(t, "pie", fig.Data[0].Type)
	require.Equal(t, []string{"2.7"}, fig.Data[0].Labels)
	require.Equal(t, []string{"3.7"}, fig.Data[1].Labels)
}

func TestHandleIndex(t *testing.T) {
	r := newTestRouter(&stubSource{recs: fixtureRecords()})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Header().Get("Content-Type"), "text/html")
	body := resp.Body.String()
	require.Contains(t, body, "marshmallow dashboard")
	require.Contains(t, body, "Include Linux (CI)")
	for _, chart := range ChartNames() {
		require.Contains(t, body, `id="`+chart+`"`)
	}
}
