package server

import (
	"bytes"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/TencentBlueKing/gopkg/stringx"
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"

	"github.com/alnah/go-md2wechat/internal/logging"
)

// RequestIDHeaderKey is the header carrying the request ID.
const RequestIDHeaderKey = "X-Request-ID"

// previewLimit caps query and error snippets in access log lines.
const previewLimit = 1024

// RequestID honors an incoming 32-char hex request ID and generates one
// otherwise. The ID is stored on the context and echoed in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeaderKey)

		if !isRequestID(requestID) {
			requestID = genRequestID()
		}
		setRequestID(c, requestID)
		c.Writer.Header().Set(RequestIDHeaderKey, requestID)

		c.Next()
	}
}

func genRequestID() string {
	return hex.EncodeToString(uuid.Must(uuid.NewV4()).Bytes())
}

func isRequestID(s string) bool {
	if len(s) != 32 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// bodyLogWriter tees response bytes so failure responses can be previewed
// in the access log.
type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Logger emits one JSON access-log line per completed request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		writer := &bodyLogWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		// Prefer the explicitly recorded error, fall back to c.Errors
		errStr, hasErr := getError(c)
		if !hasErr && len(c.Errors) > 0 {
			errStr = c.Errors.String()
			hasErr = true
		}

		// Request duration in ms, floor 1ms
		duration := time.Since(start)
		latency := float64(duration/time.Millisecond) + 1

		params := stringx.Truncate(c.Request.URL.RawQuery, previewLimit)

		// The response body only matters when something went wrong
		respBody := ""
		if hasErr {
			respBody = stringx.Truncate(writer.body.String(), previewLimit)
		}

		fields := logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"params":    params,
			"status":    c.Writer.Status(),
			"latency":   latency,
			"reqBytes":  c.Request.ContentLength,
			"respBytes": c.Writer.Size(),
			"respBody":  respBody,
			"requestID": GetRequestID(c),
			"clientIP":  c.ClientIP(),
			"error":     errStr,
		}

		logger := logging.GetAccessLogger()
		if hasErr {
			logger.WithFields(fields).Error("-")
		} else {
			logger.WithFields(fields).Info("-")
		}
	}
}

// Cors sets the fixed header triple on every response, preflight or not,
// and answers OPTIONS with 204.
func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// BodyLimit caps the request body. Reads past the cap fail with
// *http.MaxBytesError and the connection is closed.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
