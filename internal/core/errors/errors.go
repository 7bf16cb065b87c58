package errors

const (
	HttpInternalError     = "internal_error"
	HttpInvalidQueryError = "invalid_query"
	HttpUnknownChartError = "unknown_chart"
	HttpDataSourceError   = "data_source_unavailable"
)

// ErrorResponse is the error response body for chart endpoints.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
