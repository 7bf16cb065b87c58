package dashboard

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed index.html
var indexPage []byte

// HandleIndex serves the static page shell. All data arrives through the
// figure endpoints, so the page itself never blocks on the warehouse.
func (s *Service) HandleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}
