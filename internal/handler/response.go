package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "zen/internal/errors"
)

// writeError emits the flat error envelope the clients expect:
// {"error": "<message>"}.
func writeError(c *gin.Context, apiErr *apperrors.APIError) {
	if apiErr == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
}
