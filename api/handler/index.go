package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Index returns a handler for GET / that renders the entry form.
func Index() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", nil)
	}
}
