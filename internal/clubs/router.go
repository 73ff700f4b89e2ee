package clubs

import (
	"padelhub/internal/shared/config"
	"padelhub/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupClubRoutes(router *gin.RouterGroup, cfg *config.Config, controller Controller) {
	// Public routes - anyone can browse clubs
	publicClubs := router.Group("/clubs")
	{
		publicClubs.GET("", controller.GetAllClubs)     // GET /api/v1/clubs
		publicClubs.GET("/:clubId", controller.GetClub) // GET /api/v1/clubs/:clubId
	}

	// Admin routes - club management for owners and admins
	adminClubs := router.Group("/admin/clubs")
	adminClubs.Use(middleware.JWTAuth(cfg), middleware.RequireOwnerOrAdmin())
	{
		adminClubs.POST("", controller.CreateClub)           // POST /api/v1/admin/clubs
		adminClubs.PUT("/:clubId", controller.UpdateClub)    // PUT /api/v1/admin/clubs/:clubId
		adminClubs.DELETE("/:clubId", controller.DeleteClub) // DELETE /api/v1/admin/clubs/:clubId
	}
}
