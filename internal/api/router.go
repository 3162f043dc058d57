package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/message-board/internal/models"
	"github.com/message-board/internal/service"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// CSRFProtector issues session-bound CSRF tokens and rejects unsafe
// requests that do not carry one
type CSRFProtector interface {
	Protect(reject gin.HandlerFunc) gin.HandlerFunc
	Token(c *gin.Context) (string, error)
}

// PageRenderer produces the HTML board page
type PageRenderer interface {
	Render(w io.Writer, page *models.Page) error
}

// HealthChecker reports whether the store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Dependencies are the collaborators the router wires into its handlers
type Dependencies struct {
	Services *service.Services
	CSRF     CSRFProtector
	Renderer PageRenderer
	Health   HealthChecker
}

// NewRouter creates and configures the Gin router
func NewRouter(deps Dependencies, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))

	boardHandler := NewBoardHandler(deps.Services, deps.CSRF, deps.Renderer, log)

	// Health check
	router.GET("/health", healthCheck(deps.Health, log))
	router.GET("/metrics", metricsHandler(deps.Services, log))

	// POST dispatches actions, every other method renders the page
	router.Any("/", deps.CSRF.Protect(boardHandler.RejectCSRF), boardHandler.Handle)

	return router
}

// healthCheck returns the health status
func healthCheck(checker HealthChecker, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		body := gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "message-board",
		}

		if checker != nil {
			ctx, cancel := contextWithTimeout(c, 2*time.Second)
			defer cancel()

			if err := checker.HealthCheck(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body["database"] = "unreachable"
				log.Error().Err(err).Msg("Health check failed")
			}
		}

		c.JSON(status, body)
	}
}

// metricsHandler returns board metrics
func metricsHandler(services *service.Services, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := services.Board.Counts(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("Failed to collect metrics")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to collect metrics"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"database":  counts,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("request_id", c.GetString("request_id")).Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// loggingMiddleware tags each request with an id and logs it on completion
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("request_id", requestID).
			Msg("Request completed")
	}
}

// contextWithTimeout creates a context with timeout for handlers
func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}
