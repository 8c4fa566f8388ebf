// Package responses implements the uniform API envelope. Every endpoint,
// success or failure, answers with the same four-field shape.
package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tubetweet-server/internal/utils/platformerrors"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	StatusCode int    `json:"statuscode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// JSON writes a success envelope. Success is derived from the status code.
func JSON(c *gin.Context, statusCode int, data any, message string) {
	c.JSON(statusCode, Envelope{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	})
}

// HandleError maps a typed error to its HTTP status and writes a failure
// envelope. Untyped errors collapse to 500 with a generic message.
func HandleError(c *gin.Context, err error, fallbackMessage string) {
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		statusCode := platformerrors.ErrorTypeToHTTPStatus(platformErr.GetErrorType())
		message := platformErr.Message
		if message == "" {
			message = fallbackMessage
		}
		c.AbortWithStatusJSON(statusCode, Envelope{
			StatusCode: statusCode,
			Data:       nil,
			Message:    message,
			Success:    false,
		})
		return
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{
		StatusCode: http.StatusInternalServerError,
		Data:       nil,
		Message:    fallbackMessage,
		Success:    false,
	})
}

// HandleNewError creates a typed error at the route layer and writes it.
func HandleNewError(c *gin.Context, errorType platformerrors.ErrorType, message, uuid string) {
	err := platformerrors.NewError(c.Request.Context(), platformerrors.LayerRoute, errorType, message, nil, uuid)
	HandleError(c, err, message)
}
