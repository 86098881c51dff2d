package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonlink/salon-scheduler/internal/audit"
	"github.com/salonlink/salon-scheduler/internal/cache"
	"github.com/salonlink/salon-scheduler/internal/config"
	"github.com/salonlink/salon-scheduler/internal/handlers"
	infraRepo "github.com/salonlink/salon-scheduler/internal/infra/repository"
	"github.com/salonlink/salon-scheduler/internal/middleware"
	"github.com/salonlink/salon-scheduler/internal/storage"
	ucReservation "github.com/salonlink/salon-scheduler/internal/usecase/reservation"
	ucShop "github.com/salonlink/salon-scheduler/internal/usecase/shop"
)

type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Popular *cache.PopularShops
	Images  *storage.ImageStore
}

func RegisterRoutes(r *gin.Engine, deps Deps) {

	db := deps.DB
	cfg := deps.Config

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	reservationRepo := infraRepo.NewReservationGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES
	// ======================================================
	createReservationUC := ucReservation.NewCreateReservation(
		reservationRepo,
		auditDispatcher,
	)

	completeReservationUC := ucReservation.NewCompleteReservation(
		reservationRepo,
		auditDispatcher,
	)

	cancelReservationUC := ucReservation.NewCancelReservation(
		reservationRepo,
		auditDispatcher,
	)

	listByDateUC := ucReservation.NewListReservationsByDate(reservationRepo)
	listByMonthUC := ucReservation.NewListReservationsByMonth(reservationRepo)
	availabilityUC := ucReservation.NewGetAvailability(reservationRepo)

	listPopularUC := ucShop.NewListPopular(db, deps.Popular)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	shopHandler := handlers.NewShopHandler(db, deps.Images)

	menuHandler := handlers.NewMenuHandler(db)
	stylistHandler := handlers.NewStylistHandler(db, deps.Images)
	clientHandler := handlers.NewClientHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db)

	reservationHandler := handlers.NewReservationHandler(
		createReservationUC,
		completeReservationUC,
		cancelReservationUC,
		listByDateUC,
		listByMonthUC,
	)

	reviewHandler := handlers.NewReviewHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(
		db,
		createReservationUC,
		availabilityUC,
		listPopularUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/shops", publicHandler.SearchShops)
			publicAPI.GET("/shops/popular", publicHandler.PopularShops)

			publicAPI.GET("/:slug/menus", publicHandler.ListMenus)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/reservations", publicHandler.CreateReservation)

			publicAPI.GET("/:slug/reviews", reviewHandler.List)
			publicAPI.POST("/:slug/reviews", reviewHandler.Create)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/shop", shopHandler.GetMeShop)
			secured.PATCH("/me/shop", shopHandler.UpdateMeShop)
			secured.POST("/me/shop/photo", shopHandler.UploadPhoto)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/menus", menuHandler.List)
			secured.POST("/me/menus", menuHandler.Create)
			secured.PATCH("/me/menus/:id", menuHandler.Update)

			secured.GET("/me/stylists", stylistHandler.List)
			secured.POST("/me/stylists", stylistHandler.Create)
			secured.POST("/me/photo", stylistHandler.UploadPhoto)

			secured.GET("/me/schedules", scheduleHandler.Get)
			secured.PUT("/me/schedules", scheduleHandler.Update)

			// ------------------------------
			// RESERVATIONS
			// ------------------------------
			secured.POST("/me/reservations", reservationHandler.Create)
			secured.GET("/me/reservations", reservationHandler.ListByDate)
			secured.GET("/me/reservations/month", reservationHandler.ListByMonth)
			secured.PATCH("/me/reservations/:id/cancel", reservationHandler.Cancel)
			secured.PATCH("/me/reservations/:id/complete", reservationHandler.Complete)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
