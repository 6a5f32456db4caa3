package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"conference-portal-api/config"
	"conference-portal-api/controllers"
	"conference-portal-api/events"
	"conference-portal-api/gateway"
	"conference-portal-api/middleware"
	"conference-portal-api/monitor"
	"conference-portal-api/routes"
	"conference-portal-api/services"
	"conference-portal-api/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	logCloser, logger := config.InitLogging(settings)
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gw, err := openGateway(settings)
	if err != nil {
		log.Fatal("Failed to open storage: ", err)
	}

	files, err := openFileStore(ctx, settings)
	if err != nil {
		log.Fatal("Failed to open file store: ", err)
	}

	bus := events.NewBus(64)
	publisher := events.Fanout{bus}
	if len(settings.KafkaBrokers) > 0 {
		kafka := events.NewKafkaPublisher(settings.KafkaBrokers)
		defer kafka.Close()
		publisher = append(publisher, kafka)
		log.Printf("Publishing events to Kafka brokers %v", settings.KafkaBrokers)
	}

	deps := services.Deps{
		Gateway: gw,
		Files:   files,
		Events:  publisher,
		Logger:  logger,
	}
	svc := controllers.Services{
		Auth:        services.NewAuthService(deps),
		Submissions: services.NewSubmissionService(deps),
		Payments: services.NewPaymentService(deps, services.PaymentOptions{
			FeeSchedule:     settings.FeeSchedule(),
			DefaultCurrency: settings.DefaultCurrency,
		}),
		Inquiries: services.NewInquiryService(deps),
		Profiles:  services.NewProfileService(deps),
		Dashboard: services.NewDashboardService(deps),
	}

	if settings.MailEnabled() {
		feed, unsubscribe := bus.Subscribe()
		defer unsubscribe()
		notifier := services.NewNotifier(config.NewMailer(settings), svc.Profiles, logger.With("component", "notifier"))
		go notifier.Run(ctx, feed)
		log.Println("Email notifications enabled")
	}

	if settings.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(config.LogWriter))
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORSMiddleware(settings.CORSOrigins))

	// Register /logs route early (before 404 catch-all in SetupRoutes)
	monitor.RegisterLogsRoute(router, settings.LogsToken, config.LogFilePath)
	monitor.RegisterMonitorPage(router)

	handler := controllers.New(svc, controllers.Options{
		JWTSecret:   settings.JWTSecret,
		JWTLifetime: settings.JWTLifetime(),
		Bus:         bus,
		Logger:      logger,
	})
	routes.SetupRoutes(router, handler, settings.JWTSecret)

	srv := &http.Server{
		Addr:              ":" + settings.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	log.Printf("Server starting on port %s (storage=%s, uploads=%s)", settings.ServerPort, settings.StorageDriver, settings.UploadDriver)
	if settings.IsProduction() {
		log.Printf("Running in production mode")
	} else {
		log.Printf("Running in development mode")
	}

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Failed to start server: ", err)
	}
	slog.Info("server stopped")
}

func openGateway(s *config.Settings) (gateway.Gateway, error) {
	switch s.StorageDriver {
	case "memory":
		log.Println("Using in-memory SQLite storage; data is lost on restart")
		return gateway.OpenSQLite("", s.GatewayTimeout)
	case "sqlite":
		log.Printf("Using SQLite storage at %s", s.SQLitePath)
		return gateway.OpenSQLite(s.SQLitePath, s.GatewayTimeout)
	}

	db, err := config.InitDB(s)
	if err != nil {
		return nil, err
	}
	gw := gateway.NewGormGateway(db, s.GatewayTimeout)
	if s.AutoMigrate {
		if err := gw.AutoMigrate(); err != nil {
			return nil, err
		}
	}
	return gw, nil
}

func openFileStore(ctx context.Context, s *config.Settings) (storage.FileStore, error) {
	if s.UploadDriver == "s3" {
		return storage.NewS3Store(ctx, storage.S3Settings{
			Bucket:       s.S3Bucket,
			Region:       s.S3Region,
			AccessKey:    s.S3AccessKey,
			SecretKey:    s.S3SecretKey,
			BaseEndpoint: s.S3Endpoint,
		})
	}
	return storage.NewLocalStore(s.UploadPath)
}
