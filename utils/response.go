// File: /utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"friendloop-api/services"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// SendServiceError maps a service error kind to its HTTP status.
func SendServiceError(c *gin.Context, err error) {
	kind := services.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindConflict:
		status = http.StatusConflict
	case services.KindInvalidOperation:
		status = http.StatusBadRequest
	case services.KindInvalidToken:
		status = http.StatusUnauthorized
	case services.KindUnavailable:
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, ErrorResponse{
		Error: err.Error(),
		Kind:  string(kind),
	})
}
