package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/budgetme/admin-api/models"
	"github.com/budgetme/admin-api/services"

	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	Service *services.GoalService
}

func NewGoalHandler(service *services.GoalService) *GoalHandler {
	return &GoalHandler{Service: service}
}

// List returns a filtered, sorted, paged view of all goals. The category
// filter matches the goal status (in_progress, completed, cancelled).
func (h *GoalHandler) List(c *gin.Context) {
	goals, err := h.Service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load goals"})
		return
	}

	params := parseListParams(c)
	spec := services.FilterSpec[models.Goal]{
		Search:      params.Search,
		SearchField: func(g models.Goal) string { return g.GoalName },
		Category:    params.Category,
		CategoryOf:  func(g models.Goal) string { return g.Status },
		Direction:   params.SortDir,
		CurrentPage: params.Page,
		PageSize:    params.PageSize,
	}

	switch params.SortBy {
	case "name":
		spec.SortString = func(g models.Goal) string { return g.GoalName }
	case "target_amount":
		spec.SortNumber = func(g models.Goal) float64 { return g.TargetAmount }
	case "progress":
		spec.SortNumber = func(g models.Goal) float64 { return g.ProgressPct() }
	case "created_at":
		spec.SortNumber = func(g models.Goal) float64 { return float64(g.CreatedAt.Unix()) }
	}

	c.JSON(http.StatusOK, services.ApplyFilters(goals, spec))
}

func (h *GoalHandler) Get(c *gin.Context) {
	goal, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load goal"})
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Create(c *gin.Context) {
	var req models.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.Service.Create(c.Request.Context(), req, c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create goal"})
		return
	}

	c.JSON(http.StatusCreated, goal)
}

func (h *GoalHandler) Update(c *gin.Context) {
	var req models.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Service.Update(c.Request.Context(), c.Param("id"), req, c.GetString("user_id"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *GoalHandler) Delete(c *gin.Context) {
	err := h.Service.Delete(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
