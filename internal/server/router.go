// Package server assembles repositories, services and handlers into the
// HTTP router.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"resortdesk/internal/cache"
	"resortdesk/internal/config"
	"resortdesk/internal/events"
	"resortdesk/internal/middleware"
	"resortdesk/internal/modules/auth"
	"resortdesk/internal/modules/billing"
	"resortdesk/internal/modules/booking"
	"resortdesk/internal/modules/catalog"
	"resortdesk/internal/modules/customer"
	"resortdesk/internal/modules/dashboard"
	"resortdesk/internal/modules/invoice"
	"resortdesk/internal/modules/realtime"
	"resortdesk/internal/modules/room"
	"resortdesk/internal/pkg/jwt"
	"resortdesk/internal/pkg/logger"
	"resortdesk/internal/pkg/response"
	"resortdesk/internal/repository"
	"resortdesk/internal/statuslog"
)

// Dependencies are the infrastructure pieces built by main. Cache, Events
// and History fall back to in-process or database-backed defaults.
type Dependencies struct {
	Config  *config.Config
	DB      *gorm.DB
	JWT     *jwt.Service
	Cache   cache.Cache
	Events  events.Publisher
	History statuslog.Store
	Hub     *realtime.Hub
	Logger  *zap.Logger
}

func NewRouter(d Dependencies) *gin.Engine {
	cfg := d.Config
	log := logger.OrNop(d.Logger)
	if d.Cache == nil {
		d.Cache = cache.NewMemory()
	}
	if d.Events == nil {
		d.Events = events.NopPublisher{}
	}
	if d.History == nil {
		d.History = statuslog.NewGormStore(d.DB)
	}
	if d.Hub == nil {
		d.Hub = realtime.NewHub(log)
	}

	roomRepo := repository.NewRoomRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	invoiceRepo := repository.NewInvoiceRepository(d.DB)
	customerRepo := repository.NewCustomerRepository(d.DB)
	serviceRepo := repository.NewExtraServiceRepository(d.DB)
	userRepo := repository.NewUserRepository(d.DB)
	dashboardRepo := repository.NewDashboardRepository(d.DB)

	calc := billing.NewCalculator(billing.Tariff{
		FirstHour:         cfg.Billing.HourlyFirstHour,
		SecondHour:        cfg.Billing.HourlySecondHour,
		NextHours:         cfg.Billing.HourlyNextHours,
		MonthlyMultiplier: cfg.Billing.MonthlyPriceMultiplier,
	})

	roomService := room.NewService(room.Dependencies{
		Rooms:          roomRepo,
		Bookings:       bookingRepo,
		History:        d.History,
		Live:           d.Hub,
		Events:         d.Events,
		Logger:         log.Named("room"),
		PreserveManual: cfg.Reconcile.PreserveManual,
	})
	bookingService := booking.NewService(booking.Dependencies{
		Bookings:   bookingRepo,
		Rooms:      roomRepo,
		Customers:  customerRepo,
		Catalog:    serviceRepo,
		RoomStatus: roomService,
		Calculator: calc,
		Events:     d.Events,
		Logger:     log.Named("booking"),
		Config: booking.Config{
			Location:            cfg.Timezone,
			DefaultCheckInTime:  cfg.Stay.DefaultCheckInTime,
			DefaultCheckOutTime: cfg.Stay.DefaultCheckOutTime,
		},
	})
	invoiceService := invoice.NewService(invoice.Dependencies{
		Invoices: invoiceRepo,
		Bookings: bookingRepo,
		Events:   d.Events,
		Logger:   log.Named("invoice"),
		Location: cfg.Timezone,
	})
	customerService := customer.NewService(customerRepo, bookingRepo, log.Named("customer"))
	catalogService := catalog.NewService(serviceRepo, log.Named("catalog"))
	dashboardService := dashboard.NewService(dashboardRepo, d.Cache, cfg.DashboardCacheTTL, cfg.Timezone, log.Named("dashboard"))
	authService := auth.NewService(userRepo, d.JWT, log.Named("auth"))

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(log.Named("http")),
		middleware.Recovery(log),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/health", healthHandler(d.DB))
	realtime.NewHandler(d.Hub, d.JWT).RegisterRoutes(r)

	admin := middleware.AdminOnly()

	v1 := r.Group("/api/v1")
	authHandler := auth.NewHandler(authService)
	authHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(d.JWT))
	{
		authHandler.RegisterRoutes(protected, admin)
		room.NewHandler(roomService).RegisterRoutes(protected, admin)
		booking.NewHandler(bookingService).RegisterRoutes(protected, admin)
		billing.NewHandler(calc, roomRepo).RegisterRoutes(protected)
		invoice.NewHandler(invoiceService).RegisterRoutes(protected, admin)
		customer.NewHandler(customerService).RegisterRoutes(protected)
		catalog.NewHandler(catalogService).RegisterRoutes(protected, admin)
		dashboard.NewHandler(dashboardService).RegisterRoutes(protected)
	}

	return r
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is not reachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	}
}
