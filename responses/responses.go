package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPError is the JSON shape of every error response.
type HTTPError struct {
	Error string `json:"error"`
}

func JSONData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

func JSONSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, HTTPError{Error: message})
}

func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, HTTPError{Error: message})
}

func Forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, HTTPError{Error: message})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, HTTPError{Error: message})
}

func InternalServerError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, HTTPError{Error: message})
}

func BadGateway(c *gin.Context, message string) {
	c.JSON(http.StatusBadGateway, HTTPError{Error: message})
}
