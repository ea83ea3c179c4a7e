package helpers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RenderNotFound renders the 404 page.
func RenderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "errors/404.html", gin.H{})
}

// RenderServerError renders the 500 page.
func RenderServerError(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, "errors/500.html", gin.H{})
}
