package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/budgetme/admin-api/models"
	"github.com/budgetme/admin-api/services"

	"github.com/gin-gonic/gin"
)

type FamilyHandler struct {
	Service *services.FamilyService
}

func NewFamilyHandler(service *services.FamilyService) *FamilyHandler {
	return &FamilyHandler{Service: service}
}

// List returns a filtered, sorted, paged view of all families.
// GET /families?search=&category=&sort_by=&sort_dir=&page=&page_size=
func (h *FamilyHandler) List(c *gin.Context) {
	families, err := h.Service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load families"})
		return
	}

	params := parseListParams(c)
	spec := services.FilterSpec[models.Family]{
		Search:      params.Search,
		SearchField: func(f models.Family) string { return f.FamilyName },
		Category:    params.Category,
		CategoryOf:  func(f models.Family) string { return f.CurrencyPref },
		Direction:   params.SortDir,
		CurrentPage: params.Page,
		PageSize:    params.PageSize,
	}

	switch params.SortBy {
	case "name":
		spec.SortString = func(f models.Family) string { return f.FamilyName }
	case "members":
		spec.SortNumber = func(f models.Family) float64 { return float64(f.MemberCount) }
	case "created_at":
		spec.SortNumber = func(f models.Family) float64 { return float64(f.CreatedAt.Unix()) }
	}

	c.JSON(http.StatusOK, services.ApplyFilters(families, spec))
}

func (h *FamilyHandler) Get(c *gin.Context) {
	family, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Family not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load family"})
		return
	}

	c.JSON(http.StatusOK, family)
}

func (h *FamilyHandler) Create(c *gin.Context) {
	var req models.CreateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	family, err := h.Service.Create(c.Request.Context(), req, c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create family"})
		return
	}

	c.JSON(http.StatusCreated, family)
}

func (h *FamilyHandler) Update(c *gin.Context) {
	var req models.UpdateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Service.Update(c.Request.Context(), c.Param("id"), req, c.GetString("user_id"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Family not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update family"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *FamilyHandler) Delete(c *gin.Context) {
	err := h.Service.Delete(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Family not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete family"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ============================================================================
// MEMBERS & INVITATIONS
// ============================================================================

func (h *FamilyHandler) RemoveMember(c *gin.Context) {
	err := h.Service.RemoveMember(c.Request.Context(), c.Param("id"), c.Param("member_id"), c.GetString("user_id"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

func (h *FamilyHandler) Invite(c *gin.Context) {
	var req models.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invitation, err := h.Service.CreateInvitation(c.Request.Context(), c.Param("id"), req.Email, c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invitation"})
		return
	}

	c.JSON(http.StatusCreated, invitation)
}

func (h *FamilyHandler) ListInvitations(c *gin.Context) {
	invitations, err := h.Service.ListInvitations(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load invitations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"invitations": invitations})
}

func (h *FamilyHandler) CancelInvitation(c *gin.Context) {
	err := h.Service.CancelInvitation(c.Request.Context(), c.Param("id"), c.Param("invitation_id"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel invitation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func (h *FamilyHandler) AcceptInvitation(c *gin.Context) {
	var req models.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Service.AcceptInvitation(c.Request.Context(), req.Token, c.GetString("user_id"))
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found or expired"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept invitation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "accepted"})
}
