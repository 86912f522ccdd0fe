package server

import (
	"github.com/gin-gonic/gin"
)

// Keys for request-scoped values.
const (
	requestIDKey = "requestID"
	errorKey     = "error"
)

// GetRequestID returns the request ID assigned by the RequestID middleware.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func setRequestID(c *gin.Context, requestID string) {
	c.Set(requestIDKey, requestID)
}

// SetError records the error behind a failure response so the access log
// can carry it without echoing details to the client.
func SetError(c *gin.Context, err error) {
	c.Set(errorKey, err)
}

func getError(c *gin.Context) (string, bool) {
	v, ok := c.Get(errorKey)
	if !ok {
		return "", false
	}
	err, ok := v.(error)
	if !ok {
		return "", false
	}
	return err.Error(), true
}
