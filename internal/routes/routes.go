package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/payments"
	"github.com/BruksfildServices01/barber-booking/internal/storage"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
	ucSlots "github.com/BruksfildServices01/barber-booking/internal/usecase/slots"
)

// Resultados de disponibilidade valem por pouco tempo; qualquer escrita
// na agenda invalida antes via contador de versão
const slotCacheTTL = 2 * time.Minute

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

	slotCache := cache.NewSlotCache(cfg.RedisAddr, cfg.RedisPassword, slotCacheTTL)

	uploader := storage.NewUploader(
		cfg.S3Bucket,
		cfg.S3Region,
		cfg.S3AccessKey,
		cfg.S3SecretKey,
		cfg.S3Endpoint,
	)

	paymentsClient, err := payments.New(cfg.MercadoPagoToken)
	if err != nil {
		// pagamento é opcional: segue desabilitado
		paymentsClient = nil
	}

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	getFreeSlotsUC := ucSlots.NewGetFreeSlots(bookingRepo, slotCache)
	listBarbersUC := ucSlots.NewListBarbersWithSlots(bookingRepo)

	createBookingUC := ucBooking.NewCreate(
		bookingRepo,
		auditDispatcher,
		slotCache,
		paymentsClient,
	)

	updatePriceUC := ucBooking.NewUpdatePrice(
		bookingRepo,
		auditDispatcher,
	)

	listUpcomingUC := ucBooking.NewListUpcoming(bookingRepo)
	dayOverviewUC := ucBooking.NewDayOverview(bookingRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db)

	slotsHandler := handlers.NewSlotsHandler(getFreeSlotsUC, listBarbersUC)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		updatePriceUC,
		listUpcomingUC,
		dayOverviewUC,
	)

	scheduleHandler := handlers.NewScheduleHandler(db, auditDispatcher, slotCache)
	exceptionHandler := handlers.NewExceptionHandler(db, auditDispatcher, slotCache)
	breakHandler := handlers.NewBreakHandler(db, bookingRepo, auditDispatcher, slotCache)
	photoHandler := handlers.NewPhotoHandler(db, uploader, auditDispatcher)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/catalog", catalogHandler.GetCatalog)
			publicAPI.GET("/availability", slotsHandler.GetAvailability)
			publicAPI.POST("/barbers-and-slots", slotsHandler.ListBarbersAndSlots)
			publicAPI.POST("/bookings", bookingHandler.CreateBooking)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me/schedule", scheduleHandler.GetSchedule)
			secured.PUT("/me/schedule", scheduleHandler.UpdateSchedule)

			secured.GET("/me/exceptions", exceptionHandler.ListExceptions)
			secured.POST("/me/exceptions", exceptionHandler.UpsertException)

			secured.GET("/me/breaks", breakHandler.ListBreaks)
			secured.POST("/me/breaks", breakHandler.AddBreaks)
			secured.DELETE("/me/breaks/:id", breakHandler.DeleteBreak)

			secured.GET("/me/bookings", bookingHandler.ListMyBookings)
			secured.PATCH("/me/bookings/:id/price", bookingHandler.UpdateBookingPrice)

			secured.GET("/me/day", bookingHandler.GetMyDay)

			secured.POST("/me/photo", photoHandler.UploadPhoto)
		}
	}
}
