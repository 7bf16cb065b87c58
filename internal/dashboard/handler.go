package dashboard

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	httperr "github.com/marshmallow-code/dashboard/internal/core/errors"
	"github.com/marshmallow-code/dashboard/internal/source"
)

// RegisterRoutes registers the page and figure routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/", s.HandleIndex)
	r.GET("/v1/charts/:chart", s.HandleChart)
}

// HandleChart handles GET /v1/charts/:chart
// Query parameters: percentages, include_linux
func (s *Service) HandleChart(c *gin.Context) {
	var uri struct {
		Chart string `uri:"chart" binding:"required"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return
	}

	var toggles ToggleState
	if err := c.ShouldBindQuery(&toggles); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	raw, err := s.Figure(c.Request.Context(), uri.Chart, toggles)
	if err != nil {
		if errors.Is(err, ErrUnknownChart) {
			c.JSON(http.StatusNotFound, httperr.ErrorResponse{
				ErrorType: httperr.HttpUnknownChartError,
				Message:   "Unknown chart",
				Details:   err.Error(),
			})
			return
		}

		var srcErr *source.DataSourceError
		if errors.As(err, &srcErr) {
			c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
				ErrorType: httperr.HttpDataSourceError,
				Message:   "Download data is temporarily unavailable",
				Details:   err.Error(),
			})
			return
		}

		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to render chart",
			Details:   err.Error(),
		})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}
