package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/budgetme/admin-api/models"
	"github.com/budgetme/admin-api/services"

	"github.com/gin-gonic/gin"
)

type PredictionHandler struct {
	Service  *services.PredictionService
	Usage    *services.UsageService
	Insights *services.InsightsService
}

func NewPredictionHandler(service *services.PredictionService, usage *services.UsageService, insights *services.InsightsService) *PredictionHandler {
	return &PredictionHandler{Service: service, Usage: usage, Insights: insights}
}

// List returns a filtered, sorted, paged view of stored predictions. The
// category filter matches the prediction timeframe.
func (h *PredictionHandler) List(c *gin.Context) {
	predictions, err := h.Service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load predictions"})
		return
	}

	params := parseListParams(c)
	spec := services.FilterSpec[models.Prediction]{
		Search:      params.Search,
		SearchField: func(p models.Prediction) string { return p.UserName },
		Category:    params.Category,
		CategoryOf:  func(p models.Prediction) string { return p.Timeframe },
		Direction:   params.SortDir,
		CurrentPage: params.Page,
		PageSize:    params.PageSize,
	}

	switch params.SortBy {
	case "user":
		spec.SortString = func(p models.Prediction) string { return p.UserName }
	case "confidence":
		spec.SortNumber = func(p models.Prediction) float64 { return p.Confidence }
	case "generated_at":
		spec.SortNumber = func(p models.Prediction) float64 { return float64(p.GeneratedAt.Unix()) }
	}

	c.JSON(http.StatusOK, services.ApplyFilters(predictions, spec))
}

func (h *PredictionHandler) Delete(c *gin.Context) {
	err := h.Service.Delete(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prediction not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prediction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// UserSummaries returns the dashboard roster: per-user identity, prediction
// counters, quota and trailing-window trends.
func (h *PredictionHandler) UserSummaries(c *gin.Context) {
	summaries, err := h.Service.UserSummaries(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summaries"})
		return
	}

	params := parseListParams(c)
	spec := services.FilterSpec[models.UserSummary]{
		Search:      params.Search,
		SearchField: func(s models.UserSummary) string { return s.Name },
		Direction:   params.SortDir,
		CurrentPage: params.Page,
		PageSize:    params.PageSize,
	}

	switch params.SortBy {
	case "name":
		spec.SortString = func(s models.UserSummary) string { return s.Name }
	case "predictions":
		spec.SortNumber = func(s models.UserSummary) float64 { return float64(s.PredictionCount) }
	case "savings_trend":
		spec.SortNumber = func(s models.UserSummary) float64 { return s.Trends.SavingsTrendPct }
	}

	c.JSON(http.StatusOK, services.ApplyFilters(summaries, spec))
}

// UserTrends computes the trend percentages for one user, with an AI insight
// attached. A transaction fetch failure degrades to zero trends.
func (h *PredictionHandler) UserTrends(c *gin.Context) {
	userID := c.Param("user_id")
	asOf := time.Now()

	transactions, err := h.Service.UserTransactions(c.Request.Context(), userID, asOf.AddDate(0, -3, 0))
	if err != nil {
		transactions = nil
	}

	trends := services.ComputeTrends(transactions, asOf)
	insight := h.Insights.GenerateTrendInsight(c.Request.Context(), trends)

	c.JSON(http.StatusOK, gin.H{
		"user_id":      userID,
		"trends":       trends,
		"accuracy_pct": services.PredictionAccuracyPct,
		"insight":      insight,
	})
}

// UsageStatus returns the quota state for one user.
func (h *PredictionHandler) UsageStatus(c *gin.Context) {
	status, err := h.Usage.GetUserUsage(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load usage"})
		return
	}

	c.JSON(http.StatusOK, status)
}
