package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chargedcycleworks/service-intake/pkg/utils"
)

// RequestLogger logs one line per request through the shared logrus logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := utils.Logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		if c.Writer.Status() >= 500 {
			entry.Error("Request failed")
			return
		}
		entry.Info("Request handled")
	}
}
