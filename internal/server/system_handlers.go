package server

import (
	"context"
	"net/http"
	"time"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/api"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/email"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @Summary      Health check
// @Description  Reports ok when the database and the email queue answer
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Failure      503 {object} api.HealthResponse
// @Router       /health [get]
func (s *Server) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		logger.Warn("health check: database unreachable", "error", err)
		c.JSON(http.StatusServiceUnavailable, api.HealthResponse{Status: "degraded"})
		return
	}
	if s.email != nil {
		if err := s.email.Ping(ctx); err != nil {
			logger.Warn("health check: redis unreachable", "error", err)
			c.JSON(http.StatusServiceUnavailable, api.HealthResponse{Status: "degraded"})
			return
		}
		s.email.QueueLength(ctx)
	}

	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

// @Summary      Queue a test email
// @Tags         system,admin
// @Produce      json
// @Security     BearerAuth
// @Param        email query string true "Recipient email"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/test-email [post]
func TestEmail(emailService *email.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		testEmail := c.Query("email")
		if testEmail == "" {
			api.RespondBadRequest(c, "email parameter required")
			return
		}

		if err := emailService.Send(c.Request.Context(), testEmail, "Test User", "Test Email from Kaizen", "Email is working!"); err != nil {
			api.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, api.MessageResponse{Message: "Email queued successfully"})
	}
}

// @Summary      Prometheus metrics
// @Description  Exposes Prometheus metrics in text format
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
