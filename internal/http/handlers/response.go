// Package handlers implements the ops HTTP endpoints: health probing and a
// read-only view over the order store for operators.
package handlers

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the uniform JSON error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// fail aborts the request with a JSON error body.
func fail(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Code: code, Message: message})
}
