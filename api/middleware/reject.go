package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/use-agent/jacketscrape/models"
)

// Rejector writes the response for a request a middleware refuses and
// aborts the chain.
type Rejector func(c *gin.Context, err *models.ScrapeError)

// RejectJSON answers with the API error body and the status mapped from
// the error code.
func RejectJSON(c *gin.Context, err *models.ScrapeError) {
	c.AbortWithStatusJSON(err.HTTPStatus(), models.ScrapeResponse{
		Success: false,
		Error:   err.ToDetail(),
	})
}
