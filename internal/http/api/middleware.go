package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	identityHeader = "X-Sharer-User-Id"
	identityKey    = "sharerUserID"
)

// identity extracts the acting user id from the X-Sharer-User-Id header.
// Requests without a positive integer id are rejected before any handler runs.
func identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(identityHeader)

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: ErrIdentityRequired})
			return
		}

		c.Set(identityKey, userID)
		c.Next()
	}
}

func callerID(c *gin.Context) int64 {
	return c.GetInt64(identityKey)
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info("request handled",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}

func requestMetrics(requests *prometheus.CounterVec) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func recovery(log *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered", slog.Any("panic", recovered))

		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: ErrInternal})
	})
}
