// @title Booking Calendar API
// @version 1.0
// @description Slot availability and booking for the Help Center calendar widgets.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookingcalendar/config"
	"bookingcalendar/internal/adapters/appsscript"
	"bookingcalendar/internal/adapters/auth"
	"bookingcalendar/internal/adapters/email"
	delivery "bookingcalendar/internal/delivery/http"
	"bookingcalendar/internal/delivery/http/controllers"
	"bookingcalendar/internal/delivery/http/middleware"
	"bookingcalendar/internal/jobs"
	"bookingcalendar/internal/repository/postgres"
	"bookingcalendar/internal/services"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.PingContext(startupCtx); err != nil {
		log.Fatalf("ping database: %v", err)
	}
	if err := postgres.Migrate(startupCtx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretKey,
			InsecureSkipVerify: cfg.AWSSkipTLSVerify,
		},
		SendGrid: email.SendGridConfig{APIKey: cfg.SendGridAPIKey},
	})
	if err != nil {
		log.Fatalf("mailer: %v", err)
	}

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		logger.Warn("JWT_SECRET not set, using an ephemeral secret")
		jwtSecret = uuid.NewString()
	}
	tokens := auth.NewJWT(jwtSecret)

	backend := appsscript.NewClient(&http.Client{}, appsscript.Config{
		BaseURL:           cfg.AppsScriptURL,
		Timeout:           cfg.AppsScriptTimeout,
		RequestsPerSecond: cfg.AppsScriptRPS,
	})
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	calendarService := services.NewCalendarService(backend, postgres.NewBookingRepository(db), emailService, logger, cfg.ServiceTimeout)
	authService := services.NewAuthService(cfg.AdminEmail, cfg.AdminPasswordHash, auth.NewBcryptChecker(), tokens, cfg.JWTExpiry)

	mux := delivery.NewRouter(
		controllers.NewCalendarController(logger, calendarService),
		controllers.NewAuthController(logger, authService),
		tokens,
		logger,
	)
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	var refresher *jobs.Refresher
	if cfg.DefaultCalendarID != "" {
		refresher = jobs.NewRefresher(calendarService, logger, cfg.DefaultCalendarID, cfg.CacheRefreshDays, cfg.ServiceTimeout)
		if err := refresher.Start(cfg.CacheRefreshSchedule); err != nil {
			log.Fatalf("refresher: %v", err)
		}
		logger.Info("slot cache refresher started", "calendar_id", cfg.DefaultCalendarID, "schedule", cfg.CacheRefreshSchedule)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if refresher != nil {
		refresher.Stop(ctx)
	}
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", "err", err)
	}
}
