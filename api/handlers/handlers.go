// Package handlers wires the domain services to gin routes.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mistica/internal/apperr"
)

// respondError maps the error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
}

// pathID parses a numeric path parameter, answering 400 itself on garbage.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
