package reservations

import (
	"padelhub/internal/shared/config"
	"padelhub/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupReservationRoutes(router *gin.RouterGroup, cfg *config.Config, controller Controller) {
	// Public route - availability feed for the booking wizard
	router.GET("/courts/:courtId/booked", controller.GetBookedSlots)

	// Authenticated routes - booking and history
	authed := router.Group("/reservations")
	authed.Use(middleware.JWTAuth(cfg))
	{
		authed.POST("", controller.CreateReservation)
		authed.GET("", controller.GetMyReservations)
		authed.GET("/:reservationId", controller.GetReservation)
		authed.PUT("/:reservationId/cancel", controller.CancelReservation)
	}
}
