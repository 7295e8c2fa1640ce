// File: internal/common/response.go
package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondWithError sends a JSON error response and aborts the request.
func RespondWithError(c *gin.Context, err error) {
	apiErr, ok := IsAPIError(err)
	if !ok {
		if l, exists := c.Get("logger"); exists {
			if logger, ok := l.(*zap.Logger); ok {
				logger.Error("Unhandled internal error being wrapped", zap.Error(err))
			}
		}
		apiErr = ErrInternalServer.WithDetails(err.Error())
	}

	c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
}

// RespondJSON sends a plain JSON body. The auth endpoints answer with bare
// payloads ({identity, token}, {otpSent}) rather than an envelope, matching
// what the client-side gateway adapter decodes.
func RespondJSON(c *gin.Context, statusCode int, body interface{}) {
	c.JSON(statusCode, body)
}

// RespondOK sends a 200 OK response with the given body.
func RespondOK(c *gin.Context, body interface{}) {
	RespondJSON(c, http.StatusOK, body)
}

// RespondCreated sends a 201 Created response with the given body.
func RespondCreated(c *gin.Context, body interface{}) {
	RespondJSON(c, http.StatusCreated, body)
}
