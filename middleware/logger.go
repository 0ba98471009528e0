// Package middleware carries the HTTP plumbing for the admin API:
// request logging with per-request ids, panic recovery, and per-IP rate
// limiting.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader is honored on inbound requests and echoed on every
// response, so admin calls can be correlated with server logs.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// requestID returns the id assigned to this request, or "" before
// RequestLogger has run.
func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogger assigns each request an id and logs it on completion.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		log.Info("admin request",
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
