package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const contentTypeHTML = "text/html; charset=utf-8"

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// HTML writes an already rendered page.
func HTML(c *gin.Context, status int, page []byte) {
	c.Data(status, contentTypeHTML, page)
}
