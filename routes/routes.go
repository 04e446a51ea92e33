package routes

import (
	"database/sql"

	"github.com/budgetme/admin-api/handlers"
	"github.com/budgetme/admin-api/middleware"
	"github.com/budgetme/admin-api/services"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := &handlers.AuthHandler{DB: db}

	rg.POST("/auth/signup", authHandler.Signup)
	rg.POST("/auth/login", authHandler.Login)
	rg.POST("/auth/refresh", authHandler.Refresh)
	rg.POST("/auth/logout", authHandler.Logout)
}

// SetupAdminRoutes sets up the monitoring/maintenance surface, gated on the
// admin secret header.
func SetupAdminRoutes(rg *gin.RouterGroup, db *sql.DB, usage *services.UsageService, predictions *services.PredictionService) {
	adminHandler := handlers.NewAdminHandler(db, usage, predictions)

	admin := rg.Group("/admin")
	admin.Use(handlers.RequireSecret())
	{
		admin.GET("/health", adminHandler.Health)
		admin.GET("/usage/statistics", adminHandler.UsageStatistics)
		admin.POST("/usage/reset/:user_id", adminHandler.ResetUserUsage)
		admin.POST("/cleanup", adminHandler.Cleanup)
	}
}

// SetupFamilyRoutes sets up protected family CRUD and membership routes.
func SetupFamilyRoutes(rg *gin.RouterGroup, familyService *services.FamilyService) {
	h := handlers.NewFamilyHandler(familyService)

	rg.GET("/families", h.List)
	rg.POST("/families", h.Create)
	rg.GET("/families/:id", h.Get)
	rg.PUT("/families/:id", h.Update)
	rg.DELETE("/families/:id", h.Delete)

	rg.DELETE("/families/:id/members/:member_id", h.RemoveMember)
	rg.POST("/families/:id/invite", h.Invite)
	rg.GET("/families/:id/invitations", h.ListInvitations)
	rg.DELETE("/families/:id/invitations/:invitation_id", h.CancelInvitation)
	rg.POST("/invitations/accept", h.AcceptInvitation)
}

// SetupGoalRoutes sets up protected goal CRUD routes.
func SetupGoalRoutes(rg *gin.RouterGroup, goalService *services.GoalService) {
	h := handlers.NewGoalHandler(goalService)

	rg.GET("/goals", h.List)
	rg.POST("/goals", h.Create)
	rg.GET("/goals/:id", h.Get)
	rg.PUT("/goals/:id", h.Update)
	rg.DELETE("/goals/:id", h.Delete)
}

// SetupPredictionRoutes sets up protected prediction dashboard routes.
func SetupPredictionRoutes(rg *gin.RouterGroup, predictionService *services.PredictionService, usageService *services.UsageService, insightsService *services.InsightsService) {
	h := handlers.NewPredictionHandler(predictionService, usageService, insightsService)

	rg.GET("/predictions", h.List)
	rg.DELETE("/predictions/:id", h.Delete)
	rg.GET("/predictions/summaries", h.UserSummaries)
	rg.GET("/predictions/trends/:user_id", h.UserTrends)
	rg.GET("/predictions/usage/:user_id", h.UsageStatus)
}

// SetupSettingsRoutes sets up admin-only settings routes.
func SetupSettingsRoutes(rg *gin.RouterGroup, settingsService *services.SettingsService) {
	h := handlers.NewSettingsHandler(settingsService)

	settings := rg.Group("/settings")
	settings.Use(middleware.RequireAdmin())
	{
		settings.GET("", h.List)
		settings.GET("/:key", h.Get)
		settings.PUT("/:key", h.Set)
		settings.DELETE("/:key", h.Delete)
	}
}

// SetupUserRoutes sets up protected user profile routes.
func SetupUserRoutes(rg *gin.RouterGroup, db *sql.DB) {
	userHandler := &handlers.UserHandler{DB: db}

	rg.GET("/user/profile", userHandler.GetProfile)
	rg.PUT("/user/profile", userHandler.UpdateProfile)
	rg.POST("/user/password", userHandler.ChangePassword)
	rg.POST("/user/2fa/setup", userHandler.SetupTOTP)
	rg.POST("/user/2fa/verify", userHandler.VerifyTOTP)
	rg.POST("/user/2fa/disable", userHandler.DisableTOTP)
}
