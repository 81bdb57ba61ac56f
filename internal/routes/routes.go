package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpcut-app/barber-marketplace/internal/audit"
	"github.com/sharpcut-app/barber-marketplace/internal/cache"
	"github.com/sharpcut-app/barber-marketplace/internal/config"
	"github.com/sharpcut-app/barber-marketplace/internal/handlers"
	infraRepo "github.com/sharpcut-app/barber-marketplace/internal/infra/repository"
	"github.com/sharpcut-app/barber-marketplace/internal/media"
	"github.com/sharpcut-app/barber-marketplace/internal/middleware"
	"github.com/sharpcut-app/barber-marketplace/internal/payments"
	ucBooking "github.com/sharpcut-app/barber-marketplace/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	availabilityCache := cache.NewAvailabilityCache(
		cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword),
	)

	var gateway ucBooking.PaymentGateway
	if cfg.MercadoPagoToken != "" {
		mp, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoToken, cfg.PublicBaseURL)
		if err != nil {
			log.Println("mercado pago disabled:", err)
		} else {
			gateway = mp
		}
	}

	uploader := media.NewUploader(cfg)

	// ======================================================
	// 🧠 USE CASES — BOOKINGS
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo)

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		gateway,
		auditDispatcher,
	)

	confirmBookingUC := ucBooking.NewConfirmBooking(
		bookingRepo,
		auditDispatcher,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		gateway,
		auditDispatcher,
	)

	rescheduleBookingUC := ucBooking.NewRescheduleBooking(
		bookingRepo,
		auditDispatcher,
	)

	startBookingUC := ucBooking.NewStartBooking(
		bookingRepo,
		auditDispatcher,
	)

	completeBookingUC := ucBooking.NewCompleteBooking(
		bookingRepo,
		auditDispatcher,
	)

	noShowUC := ucBooking.NewMarkNoShow(
		bookingRepo,
		auditDispatcher,
	)

	listByDateUC := ucBooking.NewListBookingsByDate(bookingRepo)
	listByMonthUC := ucBooking.NewListBookingsByMonth(bookingRepo)

	attachReviewUC := ucBooking.NewAttachReview(
		bookingRepo,
		auditDispatcher,
	)

	markPaidUC := ucBooking.NewMarkBookingPaid(
		bookingRepo,
		gateway,
		auditDispatcher,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	barbershopHandler := handlers.NewBarbershopHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db, availabilityCache)
	scheduleBlockHandler := handlers.NewScheduleBlockHandler(db, availabilityCache)
	overrideHandler := handlers.NewOverrideHandler(db, availabilityCache)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		confirmBookingUC,
		cancelBookingUC,
		rescheduleBookingUC,
		startBookingUC,
		completeBookingUC,
		noShowUC,
		listByDateUC,
		listByMonthUC,
		availabilityCache,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	mediaHandler := handlers.NewMediaHandler(db, uploader)

	publicHandler := handlers.NewPublicHandler(
		db,
		availabilityUC,
		createBookingUC,
		cancelBookingUC,
		rescheduleBookingUC,
		attachReviewUC,
		availabilityCache,
	)

	searchHandler := handlers.NewSearchHandler(db)
	webhookHandler := handlers.NewPaymentWebhookHandler(markPaidUC)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET("/search/nearby", searchHandler.Nearby)

		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
			publicAPI.GET("/:slug/reviews", publicHandler.ListReviews)
		}

		// Gerência do booking pelo cliente (public_id + telefone)
		publicBookings := api.Group("/bookings")
		{
			publicBookings.GET("/:public_id", publicHandler.GetBooking)
			publicBookings.PATCH("/:public_id/cancel", publicHandler.CancelBooking)
			publicBookings.PATCH("/:public_id/reschedule", publicHandler.RescheduleBooking)
			publicBookings.POST("/:public_id/review", publicHandler.CreateReview)
		}

		// ------------------------------
		// 💳 WEBHOOK DE PAGAMENTO
		// ------------------------------
		api.POST("/payments/webhook", webhookHandler.Handle)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/barbershop", barbershopHandler.GetMeBarbershop)
			secured.PATCH("/me/barbershop", barbershopHandler.UpdateMeBarbershop)
			secured.POST("/me/barbershop/avatar", mediaHandler.UploadAvatar)

			secured.GET("/me/clients", clientHandler.List)
			secured.GET("/me/clients/:id/history", clientHandler.History)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			secured.GET("/me/schedule-blocks", scheduleBlockHandler.List)
			secured.POST("/me/schedule-blocks", scheduleBlockHandler.Create)
			secured.DELETE("/me/schedule-blocks/:id", scheduleBlockHandler.Delete)

			secured.GET("/me/overrides", overrideHandler.List)
			secured.PUT("/me/overrides", overrideHandler.Upsert)
			secured.DELETE("/me/overrides/:date", overrideHandler.Delete)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListByDate)
			secured.GET("/me/bookings/month", bookingHandler.ListByMonth)
			// Transições de booking são ação do dono da agenda
			ownerOnly := middleware.RequireRole("owner")
			secured.PATCH("/me/bookings/:id/confirm", ownerOnly, bookingHandler.Confirm)
			secured.PATCH("/me/bookings/:id/cancel", ownerOnly, bookingHandler.Cancel)
			secured.PATCH("/me/bookings/:id/reschedule", ownerOnly, bookingHandler.Reschedule)
			secured.PATCH("/me/bookings/:id/start", ownerOnly, bookingHandler.Start)
			secured.PATCH("/me/bookings/:id/complete", ownerOnly, bookingHandler.Complete)
			secured.PATCH("/me/bookings/:id/no-show", ownerOnly, bookingHandler.NoShow)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
