package main

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/uvalib/virgo4-finna-ws/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

// requestLogger tags each request with an id and logs it once served
func requestLogger(c *gin.Context) {
	start := time.Now()
	reqID := c.GetHeader(requestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	c.Set("request_id", reqID)
	c.Header(requestIDHeader, reqID)

	c.Next()

	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	status := c.Writer.Status()
	metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(status)).Inc()
	log.WithFields(log.Fields{
		"request_id": reqID,
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"query":      c.Request.URL.RawQuery,
		"status":     status,
		"took":       time.Since(start).String(),
	}).Info("http.request")
}
