package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"venuebook/internal/config"
	"venuebook/internal/database"
	"venuebook/internal/middleware"
	"venuebook/internal/modules/admin"
	"venuebook/internal/modules/availability"
	"venuebook/internal/modules/booking"
	"venuebook/internal/modules/catalog"
	"venuebook/internal/modules/contract"
	"venuebook/internal/modules/notify"
	"venuebook/internal/modules/payment"
	"venuebook/internal/modules/pricing"
	"venuebook/internal/modules/schedule"
	jwtsvc "venuebook/internal/pkg/jwt"
	"venuebook/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	bookingRepo := repository.NewBookingRepository(db)
	blockedRepo := repository.NewBlockedDateRepository(db)
	addOnRepo := repository.NewAddOnRepository(db)
	showingRepo := repository.NewShowingRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := notify.NewHub()
	defer hub.Close()
	sender := notify.NewSender(cfg.SMTP, hub)
	wsHandler := notify.NewWSHandler(hub, j)

	pricer := pricing.NewService(cfg.Pricing)
	avail := availability.NewService(bookingRepo, blockedRepo, showingRepo)

	bookingService := booking.NewService(bookingRepo, addOnRepo, avail, showingRepo, pricer, sender, cfg.ManagementTokenTTL)
	bookingHandler := booking.NewHandler(bookingService, avail, pricer)

	contractService := contract.NewService(bookingRepo, cfg.ContractVersion, cfg.ContractText)
	contractHandler := contract.NewHandler(contractService)

	gateway := payment.NewStripeClient(cfg.Stripe)
	paymentService := payment.NewService(bookingRepo, bookingService, gateway, cfg.Stripe.WebhookSecret, log.Printf)
	paymentHandler := payment.NewHandler(paymentService)

	scheduleService := schedule.NewService(blockedRepo, showingRepo)
	scheduleHandler := schedule.NewHandler(scheduleService)

	catalogService := catalog.NewService(addOnRepo, bookingRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	adminService := admin.NewService(adminRepo, j)
	adminHandler := admin.NewHandler(adminService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.GET("/ws/admin", wsHandler.HandleWebSocket)

	v1 := r.Group("/api/v1")
	{
		// public
		adminHandler.RegisterRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)
		contractHandler.RegisterRoutes(v1)
		paymentHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)

		// protected (admin console)
		adminGroup := v1.Group("/admin")
		adminGroup.Use(middleware.AdminAuth(j))
		{
			bookingHandler.RegisterAdminRoutes(adminGroup)
			paymentHandler.RegisterAdminRoutes(adminGroup)
			scheduleHandler.RegisterRoutes(adminGroup)
			catalogHandler.RegisterAdminRoutes(adminGroup)
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
