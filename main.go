package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ticketdesk/cache"
	"ticketdesk/config"
	"ticketdesk/docgen"
	"ticketdesk/handlers"
	_ "ticketdesk/migrations"
	"ticketdesk/monitoring"
	"ticketdesk/security"
	"ticketdesk/services"
	"ticketdesk/storage"
	"ticketdesk/store"
	"ticketdesk/utils"

	"github.com/labstack/echo/v5"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/pocketbase/pocketbase/tools/mailer"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

func main() {
	app := pocketbase.New()
	cfg := config.LoadConfig()

	log.SetFormatter(&log.JSONFormatter{})
	if cfg.Environment == "development" {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		log.SetLevel(log.DebugLevel)
	}

	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: cfg.Environment == "development",
	})

	rdb := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)

	var publisher services.CheckinPublisher
	if cfg.PubNubPublishKey != "" {
		pnConfig := pubnub.NewConfig()
		pnConfig.PublishKey = cfg.PubNubPublishKey
		pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
		pnConfig.SecretKey = cfg.PubNubSecretKey
		publisher = services.NewPubNubPublisher(pubnub.NewPubNub(pnConfig), cfg.CheckinChannel)
	}

	generator, err := docgen.NewGenerator()
	if err != nil {
		log.WithError(err).Fatal("document generator init failed")
	}

	monitor := monitoring.NewMonitor(app)
	ticketStore := store.New(app)
	fileStore := storage.NewFileStore(app, cfg.PublicStorageURL, cfg.StoragePrefix)
	eventCache := cache.NewRedisCache(rdb, cfg.CacheTTL)

	seatService := services.NewSeatService(ticketStore, generator, fileStore, monitor)
	checkinService := services.NewCheckinService(ticketStore, publisher, monitor)
	notifyService := services.NewNotifyService(
		ticketStore,
		fileStore,
		func() mailer.Mailer { return app.NewMailClient() },
		rdb,
		monitor,
		cfg.MailSenderName,
		cfg.MailSenderAddress,
		cfg.SendIntentTTL,
	)
	ticketService := services.NewTicketService(ticketStore, cfg.PageSize)
	eventService := services.NewEventService(ticketStore, eventCache)
	orderService := services.NewOrderService(ticketStore, cfg.SerialPrefix)
	authService := services.NewAuthService(ticketStore, rdb, cfg.AdminSecretHash, cfg.SessionTTL)

	seatHandler := handlers.NewSeatHandler(seatService)
	checkinHandler := handlers.NewCheckinHandler(checkinService)
	notifyHandler := handlers.NewNotifyHandler(notifyService)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	eventHandler := handlers.NewEventHandler(eventService)
	orderHandler := handlers.NewOrderHandler(orderService)
	authHandler := handlers.NewAuthHandler(authService)
	limiter := security.NewRateLimiter(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go notifyService.ReconcileSendIntents(ctx, cfg.ReconcileInterval)
	go handleShutdown(cancel)

	if cfg.EnableMetrics {
		go serveMetrics(cfg.MetricsPort, rdb)
	}

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Public surface.
		e.Router.GET("/api/events", eventHandler.List)
		e.Router.GET("/api/events/{id}/ticket-types", eventHandler.ListTicketTypes)
		e.Router.POST("/api/orders", orderHandler.PlaceOrder)

		// Gate surface.
		e.Router.POST("/api/scan-ticket", checkinHandler.Scan)
		e.Router.POST("/api/scan-ticket/decode", checkinHandler.DecodeFrame)
		e.Router.POST("/api/mark-used", checkinHandler.MarkUsed)

		// Admin surface. Login is throttled per IP against brute force.
		e.Router.POST("/api/admin/login",
			limiter.Limit("login", 10, time.Minute, authHandler.Login))
		e.Router.POST("/api/admin/logout", authHandler.Logout)
		e.Router.GET("/api/tickets", authHandler.RequireAdmin(ticketHandler.List))
		e.Router.GET("/api/tickets/export", authHandler.RequireAdmin(ticketHandler.Export))
		e.Router.POST("/api/seat-assign", authHandler.RequireAdmin(seatHandler.AssignSeat))
		e.Router.POST("/api/send-ticket", authHandler.RequireAdmin(notifyHandler.SendTicket))

		e.Router.GET("/health", func(re *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(rdb); err != nil {
				return re.JSON(http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"redis":  err.Error(),
				})
			}
			return re.JSON(http.StatusOK, map[string]string{"status": "ok"})
		})

		return e.Next()
	})

	if err := app.Start(); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

// serveMetrics exposes prometheus metrics and a redis-aware health endpoint
// on a sidecar listener, away from the public API port.
func serveMetrics(port string, rdb *redis.Client) {
	e := echo.New()

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		if err := utils.RedisHealthCheck(rdb); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"redis":  err.Error(),
			})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	server := &http.Server{Addr: ":" + port, Handler: e}
	log.WithField("port", port).Info("metrics listener started")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Error("metrics listener stopped")
	}
}

func handleShutdown(cancel context.CancelFunc) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down background workers")
	cancel()
}
