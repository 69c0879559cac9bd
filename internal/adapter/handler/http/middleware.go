package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
	"github.com/cphbikes/bikeshare-backend/internal/core/ports"
	"github.com/cphbikes/bikeshare-backend/internal/correlation"

	"github.com/gin-gonic/gin"
)

const (
	authorizationHeader     = "Authorization"
	authorizationPayloadKey = "authorization_payload"
	correlationHeader       = "X-Correlation-ID"
)

// CorrelationIDMiddleware attaches a correlation id to the request context and
// echoes it in the response, accepting a caller-provided one when present.
func CorrelationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cid := c.GetHeader(correlationHeader)
		if cid == "" {
			cid = correlation.NewID()
		}

		ctx := correlation.WithID(c.Request.Context(), cid)
		c.Request = c.Request.WithContext(ctx)
		c.Header(correlationHeader, cid)

		c.Next()
	}
}

// RequestLoggingMiddleware logs one line per handled request and feeds the
// request metrics.
func RequestLoggingMiddleware(logger ports.LoggerPort, metrics ports.MetricsPort) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		status := c.Writer.Status()
		metrics.RecordRequest(c.Request.Method, c.FullPath(), status, elapsed)
		logger.Info("Request handled", map[string]interface{}{
			"method":         c.Request.Method,
			"path":           c.Request.URL.Path,
			"status":         status,
			"elapsed_ms":     elapsed.Milliseconds(),
			"correlation_id": correlation.FromContext(c.Request.Context()),
		})
	}
}

func AuthMiddleware(tokenService ports.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authorizationHeader)
		if header == "" {
			newErrorResponse(c, http.StatusUnauthorized, "Authorization header missing")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		payload, err := tokenService.VerifyToken(token)
		if err != nil {
			newErrorResponse(c, http.StatusUnauthorized, "Invalid token")
			c.Abort()
			return
		}

		c.Set(authorizationPayloadKey, payload)
		c.Next()
	}
}

// AdminMiddleware requires an authenticated admin. It runs after
// AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, exists := getAuthPayload(c, authorizationPayloadKey)
		if !exists || payload.Role != domain.Admin {
			newErrorResponse(c, http.StatusForbidden, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func getAuthPayload(c *gin.Context, key string) (*domain.TokenPayload, bool) {
	value, exists := c.Get(key)
	if !exists {
		return nil, false
	}
	payload, ok := value.(*domain.TokenPayload)
	return payload, ok
}
