package respond

import (
	"github.com/gin-gonic/gin"

	"askpdf-backend/internal/shared/telemetry"
)

// ErrorResponse is the error envelope for every failed request. The API
// contract is a flat {"error": message} body; the structured code is kept
// for logging only.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error logs and sends a standardized error response, aborting the request.
func Error(c *gin.Context, status int, code, message string) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}
