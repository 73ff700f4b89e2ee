// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"padelhub/internal/clubs"
	"padelhub/internal/courts"
	"padelhub/internal/notifications"
	"padelhub/internal/reservations"
	"padelhub/internal/reviews"
	"padelhub/internal/shared/config"
	"padelhub/internal/shared/database"
	"padelhub/internal/slots"
	"padelhub/internal/wizard"
	"padelhub/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	cacheService cache.Service

	// Services kept for cross-module injection
	clubService        clubs.Service
	courtService       courts.Service
	slotService        slots.Service
	reservationService reservations.Service
	reviewService      reviews.Service

	notificationService notifications.Service
	wizardRegistry      *wizard.Registry
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, notificationService notifications.Service) *Router {
	return &Router{
		config:              cfg,
		db:                  db,
		cacheService:        cacheService,
		notificationService: notificationService,
	}
}

// WizardRegistry exposes the session registry so main can stop its sweeper.
func (r *Router) WizardRegistry() *wizard.Registry {
	return r.wizardRegistry
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.buildServices()

	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		clubs.SetupClubRoutes(api, r.config, clubs.NewController(r.clubService))
		courts.SetupCourtRoutes(api, r.config, courts.NewController(r.courtService))
		slots.SetupSlotRoutes(api, r.config, slots.NewController(r.slotService))
		reviews.SetupReviewRoutes(api, r.config, reviews.NewController(r.reviewService))
		reservations.SetupReservationRoutes(api, r.config, reservations.NewController(r.reservationService))
		wizard.SetupWizardRoutes(api, wizard.NewController(r.wizardRegistry))
	}
}

// buildServices wires every domain service and its cross-module dependencies.
func (r *Router) buildServices() {
	pg := r.db.GetPostgreSQL()

	r.clubService = clubs.NewService(clubs.NewRepository(pg))
	r.courtService = courts.NewService(courts.NewRepository(pg))
	r.slotService = slots.NewService(slots.NewRepository(pg))
	r.reservationService = reservations.NewService(reservations.NewRepository(pg))
	r.reviewService = reviews.NewService(reviews.NewRepository(pg))

	if r.cacheService != nil {
		r.clubService.SetCacheService(r.cacheService)
		r.courtService.SetCacheService(r.cacheService)
		r.slotService.SetCacheService(r.cacheService)
		r.reservationService.SetCacheService(r.cacheService)
		r.reviewService.SetCacheService(r.cacheService)
	}

	// Club pages embed aggregate ratings
	r.clubService.SetReviewService(r.reviewService)

	// Reservations re-read the catalog, clear wizard drafts and emit emails
	draftStore := wizard.NewRedisDraftStore(r.db.GetRedis(), r.config.Wizard.DraftTTL)
	signalStore := wizard.NewRedisSignalStore(r.db.GetRedis(), r.config.Wizard.DraftTTL)

	r.reservationService.SetSlotService(r.slotService)
	r.reservationService.SetDraftStore(draftStore)
	if r.notificationService != nil {
		r.reservationService.SetNotificationService(r.notificationService)
	}

	r.wizardRegistry = wizard.NewRegistry(wizard.Deps{
		Drafts:       draftStore,
		Signals:      signalStore,
		Clubs:        wizard.NewClubAdapter(r.clubService),
		Courts:       wizard.NewCourtAdapter(r.courtService),
		Slots:        wizard.NewSlotAdapter(r.slotService),
		Availability: wizard.NewAvailabilityAdapter(r.reservationService),
	}, r.config.Wizard.SessionIdleTTL, r.config.Wizard.SessionSweepInterval)
	r.wizardRegistry.StartSweeper()
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "padelhub-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "padelhub-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "operational",
			"api_version":     r.config.APIVersion,
			"wizard_sessions": r.wizardRegistry.Len(),
			"timestamp":       time.Now(),
		})
	})
}
