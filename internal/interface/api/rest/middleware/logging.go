package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"user-registry-api/internal/infrastructure/metrics"
)

const (
	maxLogBodySize = 1 << 12 // 4 KB
	maskedValue    = "***"
)

var sensitiveFields = []string{"password"}

type readCloser struct {
	io.Reader
	io.Closer
}

func RequestLogGin(logger *zap.Logger, mCounter *prometheus.CounterVec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions ||
			c.Request.URL.Path == "/favicon.ico" ||
			strings.HasSuffix(c.Request.URL.Path, "/metrics") {
			c.Next()
			return
		}

		start := time.Now()

		var body string
		if orig := c.Request.Body; orig != nil && orig != http.NoBody {
			head, err := io.ReadAll(io.LimitReader(orig, maxLogBodySize+1))
			c.Request.Body = readCloser{
				Reader: io.MultiReader(bytes.NewReader(head), orig),
				Closer: orig,
			}
			if err == nil {
				body = maskBody(head)
			}
		}

		c.Next()

		if mCounter != nil {
			mCounter.WithLabelValues(metrics.AppRequestsTotal).Inc()
		}

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("url", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("body", body),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		)
	}
}

// maskBody never lets a password through: bodies that are not valid JSON are
// dropped, JSON bodies get their sensitive fields replaced.
func maskBody(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	if len(raw) > maxLogBodySize {
		return "<body too large, omitted>"
	}
	if !gjson.ValidBytes(raw) {
		return "<invalid json omitted>"
	}

	out := raw
	for _, f := range sensitiveFields {
		if !gjson.GetBytes(out, f).Exists() {
			continue
		}
		masked, err := sjson.SetBytes(out, f, maskedValue)
		if err != nil {
			return "<body omitted>"
		}
		out = masked
	}

	return string(out)
}
