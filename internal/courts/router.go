package courts

import (
	"padelhub/internal/shared/config"
	"padelhub/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCourtRoutes(router *gin.RouterGroup, cfg *config.Config, controller Controller) {
	// Public routes - court browsing
	router.GET("/clubs/:clubId/courts", controller.GetCourtsByClub)
	router.GET("/courts/:courtId", controller.GetCourt)

	// Admin routes - court management for owners and admins
	adminCourts := router.Group("/admin/courts")
	adminCourts.Use(middleware.JWTAuth(cfg), middleware.RequireOwnerOrAdmin())
	{
		adminCourts.POST("", controller.CreateCourt)
		adminCourts.PUT("/:courtId", controller.UpdateCourt)
		adminCourts.DELETE("/:courtId", controller.DeleteCourt)
	}
}
