package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestLoggerMiddleware tags each request with a generated request id and
// logs method, path, status and latency once the handler chain finishes
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()
	requestID := uuid.NewString()
	c.Set("requestID", requestID)
	c.Header("X-Request-ID", requestID)

	c.Next() // process request

	logrus.WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start).String(),
	}).Info("HTTP request")
}
