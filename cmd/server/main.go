package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"rsvpdemo/config"
	_ "rsvpdemo/docs"
	"rsvpdemo/internal/adapters/email"
	"rsvpdemo/internal/adapters/realtime"
	"rsvpdemo/internal/adapters/session"
	deliveryhttp "rsvpdemo/internal/delivery/http"
	"rsvpdemo/internal/delivery/http/controllers"
	"rsvpdemo/internal/delivery/http/middleware"
	"rsvpdemo/internal/domain"
	"rsvpdemo/internal/repository/postgres"
	"rsvpdemo/internal/services"
)

// sessionCookieLifetime bounds how long a browser keeps its session ID.
// The server-side form expires earlier when idle.
const sessionCookieLifetime = 7 * 24 * time.Hour

// @title RSVP Demo API
// @version 1.0
// @description Single-event RSVP form with a live attendee list.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	startCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()
	if err := db.PingContext(startCtx); err != nil {
		return err
	}
	if err := postgres.Migrate(startCtx, db, cfg.EventID, cfg.EventName); err != nil {
		return err
	}
	logger.Info("database ready", "event_id", cfg.EventID)

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	rsvpRepo := postgres.NewRSVPRepository(db)

	// Realtime feed
	feed := realtime.NewFeed(realtime.NewListener(cfg.DBUrl, logger), postgres.ChangesChannel, logger)
	if err := feed.Start(); err != nil {
		return err
	}
	defer feed.Close()
	go feed.Run(ctx)

	// Email
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	})
	if err != nil {
		return err
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	// Sessions
	forms := services.NewSessionRegistry(cfg.SessionTTL, func() domain.RSVPForm {
		return services.NewRSVPForm(cfg.EventID, eventRepo, rsvpRepo, feed, emailService, logger)
	}, logger)
	defer forms.Close()
	tokens := session.NewJWTTokens(cfg.SessionSecret)
	withSession := middleware.Session(middleware.SessionOptions{
		Issuer:   tokens,
		Verifier: tokens,
		NewID:    session.NewID,
		Lifetime: sessionCookieLifetime,
		Secure:   cfg.Environment == "production",
		Logger:   logger,
	})

	// Controllers
	rsvpController := controllers.NewRSVPController(logger, forms)
	realtimeController := controllers.NewRealtimeController(logger, forms, cfg.AllowedOrigins)
	healthController := controllers.NewHealthController(logger, db)

	router := deliveryhttp.NewRouter(rsvpController, realtimeController, healthController, withSession, cfg.RSVPRateLimit)
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, router))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: cfg.RequestTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Websocket connections are hijacked and not tracked by Shutdown; closing
	// the registry releases their subscriptions.
	return srv.Shutdown(shutdownCtx)
}
