package reviews

import (
	"padelhub/internal/shared/config"
	"padelhub/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupReviewRoutes(router *gin.RouterGroup, cfg *config.Config, controller Controller) {
	// Public routes - review browsing
	router.GET("/clubs/:clubId/reviews", controller.GetReviewsByClub)
	router.GET("/clubs/:clubId/rating", controller.GetClubRating)

	// Authenticated routes - players manage their own reviews
	authed := router.Group("/reviews")
	authed.Use(middleware.JWTAuth(cfg))
	{
		authed.POST("", controller.CreateReview)
		authed.PUT("/:reviewId", controller.UpdateReview)
		authed.DELETE("/:reviewId", controller.DeleteReview)
	}
}
