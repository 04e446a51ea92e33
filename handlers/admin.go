// handlers/admin.go
package handlers

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/budgetme/admin-api/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the monitoring and maintenance surface. Routes accept
// either an authenticated admin account or the X-Admin-Secret header, so
// operational scripts can call them without a login flow.
type AdminHandler struct {
	DB          *sql.DB
	Usage       *services.UsageService
	Predictions *services.PredictionService
}

func NewAdminHandler(db *sql.DB, usage *services.UsageService, predictions *services.PredictionService) *AdminHandler {
	return &AdminHandler{DB: db, Usage: usage, Predictions: predictions}
}

// RequireSecret gates a route on the X-Admin-Secret header.
func RequireSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		expectedSecret := os.Getenv("ADMIN_SECRET")
		if expectedSecret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "ADMIN_SECRET not configured"})
			return
		}
		if c.GetHeader("X-Admin-Secret") != expectedSecret {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin secret"})
			return
		}
		c.Next()
	}
}

// Health reports service and database status for admin monitoring.
// GET /api/v1/admin/health
func (h *AdminHandler) Health(c *gin.Context) {
	dbHealthy := h.DB.PingContext(c.Request.Context()) == nil

	status := "healthy"
	dbStatus := "healthy"
	if !dbHealthy {
		status = "degraded"
		dbStatus = "error"
	}

	var usageStats interface{}
	if stats, err := h.Usage.Statistics(c.Request.Context()); err == nil {
		usageStats = stats
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"services": gin.H{
			"database":       dbStatus,
			"usage_tracking": "healthy",
		},
		"usage_statistics": usageStats,
		"version":          "1.0.0",
	})
}

// UsageStatistics returns quota aggregates across all users.
// GET /api/v1/admin/usage/statistics
func (h *AdminHandler) UsageStatistics(c *gin.Context) {
	stats, err := h.Usage.Statistics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load usage statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"statistics": stats,
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}

// ResetUserUsage zeroes one user's quota counter.
// POST /api/v1/admin/usage/reset/:user_id
func (h *AdminHandler) ResetUserUsage(c *gin.Context) {
	status, err := h.Usage.ResetUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset usage"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Usage reset successfully",
		"status":  status,
	})
}

// Cleanup resets expired usage windows and purges expired predictions.
// POST /api/v1/admin/cleanup
func (h *AdminHandler) Cleanup(c *gin.Context) {
	usageReset, err := h.Usage.CleanupExpired(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Usage cleanup failed"})
		return
	}

	predictionsPurged, err := h.Predictions.PurgeExpired(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prediction cleanup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"usage_records_reset": usageReset,
		"predictions_purged":  predictionsPurged,
	})
}
