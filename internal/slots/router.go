package slots

import (
	"padelhub/internal/shared/config"
	"padelhub/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupSlotRoutes(router *gin.RouterGroup, cfg *config.Config, controller Controller) {
	// Public routes - slot catalog browsing
	router.GET("/courts/:courtId/slots", controller.GetSlotsByCourt)

	// Admin routes - catalog management for owners and admins
	adminSlots := router.Group("/admin/slots")
	adminSlots.Use(middleware.JWTAuth(cfg), middleware.RequireOwnerOrAdmin())
	{
		adminSlots.POST("", controller.CreateSlot)
		adminSlots.PUT("/:slotId", controller.UpdateSlot)
		adminSlots.PUT("/:slotId/deactivate", controller.DeactivateSlot)
		adminSlots.PUT("/:slotId/activate", controller.ActivateSlot)
	}
}
