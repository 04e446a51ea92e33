package handlers

import (
	"strconv"

	"github.com/budgetme/admin-api/services"

	"github.com/gin-gonic/gin"
)

// listParams are the query parameters shared by every dashboard table:
// ?search=&category=&sort_by=&sort_dir=&page=&page_size=
type listParams struct {
	Search   string
	Category string
	SortBy   string
	SortDir  services.SortDirection
	Page     int
	PageSize int
}

func parseListParams(c *gin.Context) listParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = services.DefaultPageSize
	}

	dir := services.SortAsc
	if c.Query("sort_dir") == string(services.SortDesc) {
		dir = services.SortDesc
	}

	return listParams{
		Search:   c.Query("search"),
		Category: c.DefaultQuery("category", services.CategoryAll),
		SortBy:   c.Query("sort_by"),
		SortDir:  dir,
		Page:     page,
		PageSize: pageSize,
	}
}
