package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"interview-ai/internal/api/errors"
)

// ErrorHandler middleware recovers panics into an internal_server_error response
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString(RequestIDKey)

		var apiErr *errors.APIError

		switch err := recovered.(type) {
		case *errors.APIError:
			apiErr = err
		case error:
			logger.Error("Internal server error",
				zap.Error(err),
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			apiErr = errors.NewInternalError(err.Error())
		default:
			logger.Error("Unknown panic occurred",
				zap.String("recovered", fmt.Sprint(recovered)),
				zap.String("request_id", requestID),
			)
			apiErr = errors.NewInternalError(fmt.Sprint(recovered))
		}

		apiErr.RequestID = requestID
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
	})
}

// HandleError writes err as an error envelope and aborts the request.
// Errors without a stable code are reported as internal_server_error.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	apiErr := errors.FromError(err)
	apiErr.RequestID = c.GetString(RequestIDKey)
	_ = c.Error(err)
	c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
}
