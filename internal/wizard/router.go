package wizard

import (
	"github.com/gin-gonic/gin"
)

func SetupWizardRoutes(router *gin.RouterGroup, controller Controller) {
	// The wizard is pre-auth: players browse and build a draft before they
	// sign in on the confirm page.
	sessions := router.Group("/wizard/sessions")
	{
		sessions.POST("", controller.CreateSession)
		sessions.GET("/:sessionId", controller.GetSession)
		sessions.PUT("/:sessionId/court", controller.SelectCourt)
		sessions.PUT("/:sessionId/date", controller.SelectDate)
		sessions.PUT("/:sessionId/slot", controller.SelectSlot)
		sessions.PUT("/:sessionId/month", controller.NavigateMonth)
		sessions.POST("/:sessionId/next", controller.Next)
		sessions.POST("/:sessionId/back", controller.Back)
		sessions.POST("/:sessionId/finalize", controller.Finalize)
		sessions.POST("/:sessionId/resume-signal", controller.MarkResume)
	}
}
