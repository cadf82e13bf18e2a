package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request once the handler chain returns.
// Requests that fail server-side log at Error, client errors at Warn.
// The route template is logged next to the raw path so that requests
// against /jobs/:employerId/:jobId/apply can be grouped.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		panic("RequestLogger requires a non-nil zap.Logger instance")
	}
	return func(c *gin.Context) {
		begin := time.Now()
		rawPath := c.Request.URL.Path
		rawQuery := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		fields := make([]zap.Field, 0, 10)
		fields = append(fields,
			zap.String("method", c.Request.Method),
			zap.String("path", rawPath),
			zap.String("route", c.FullPath()),
			zap.Int("status_code", status),
			zap.Int("bytes", c.Writer.Size()),
			zap.Duration("latency", time.Since(begin)),
			zap.String("client_ip", c.ClientIP()),
		)
		for key, field := range map[string]string{
			"request_id": c.GetString(ContextRequestID),
			"user_id":    c.GetString(ContextUserID),
			"query":      rawQuery,
		} {
			if field != "" {
				fields = append(fields, zap.String(key, field))
			}
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("gin_errors", c.Errors.Errors()))
		}

		level := zap.InfoLevel
		if status >= http.StatusInternalServerError {
			level = zap.ErrorLevel
		} else if status >= http.StatusBadRequest {
			level = zap.WarnLevel
		}
		if ce := logger.Check(level, "HTTP request"); ce != nil {
			ce.Write(fields...)
		}
	}
}
