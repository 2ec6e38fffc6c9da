// Command api serves the Together events HTTP API.
//
// @title Together API
// @version 1.0
// @description Create, discover and join social sporting events.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"together/config"
	_ "together/docs"
	"together/internal/adapters/auth"
	"together/internal/adapters/email"
	"together/internal/adapters/rabbitmq"
	httpdelivery "together/internal/delivery/http"
	"together/internal/delivery/http/controllers"
	"together/internal/domain"
	"together/internal/repository/postgres"
	redisrepo "together/internal/repository/redis"
	"together/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.RunMigrations(cfg.DBUrl, cfg.MigrationsPath, logger); err != nil {
		return err
	}

	cache, closeCache, err := newReferenceCache(cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	publisher, closePublisher, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
			Endpoint:           cfg.Email.SESEndpoint,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}

	store := postgres.NewStore(db)
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("email templates: %w", err)
	}
	emails := services.NewEmailService(mailer, renderer, logger)
	notifier := services.NewNotificationService(publisher, postgres.NewUserRepository(db), emails, logger)

	eventSvc := services.NewEventService(store, cfg.RequestTimeout)
	requestSvc := services.NewRequestService(store, notifier, cfg.RequestTimeout)
	favoriteSvc := services.NewFavoriteService(store, cfg.RequestTimeout)
	referenceSvc := services.NewReferenceService(postgres.NewReferenceRepository(db), cache, logger, cfg.RequestTimeout)
	equipmentSvc := services.NewEquipmentService(postgres.NewEquipmentRepository(db), cache, logger, cfg.RequestTimeout)

	router := httpdelivery.NewRouter(httpdelivery.RouterConfig{
		Logger:             logger,
		Verifier:           auth.NewJWTVerifier(cfg.JWTSecret),
		AllowedOrigins:     cfg.CORSAllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Health:             db.PingContext,
	}, httpdelivery.Controllers{
		Events:     controllers.NewEventController(logger, eventSvc),
		Requests:   controllers.NewRequestController(logger, requestSvc),
		Favorites:  controllers.NewFavoriteController(logger, favoriteSvc),
		References: controllers.NewReferenceController(logger, referenceSvc),
		Equipment:  controllers.NewEquipmentController(logger, equipmentSvc),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return serve(ctx, srv, logger)
}

func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newReferenceCache connects to Redis when REDIS_URL is set. An unreachable Redis is not fatal:
// the service runs without a cache.
func newReferenceCache(cfg *config.Config, logger *slog.Logger) (domain.ReferenceCache, func(), error) {
	if cfg.RedisURL == "" {
		logger.Info("reference cache disabled")
		return redisrepo.NopReferenceCache{}, func() {}, nil
	}
	client, err := redisrepo.New(cfg.RedisURL)
	if err != nil {
		logger.Warn("reference cache unavailable, continuing without it", "err", err)
		return redisrepo.NopReferenceCache{}, func() {}, nil
	}
	return redisrepo.NewReferenceCache(client, cfg.ReferenceCacheTTL), func() { _ = client.Close() }, nil
}

// newPublisher connects to RabbitMQ when AMQP_URL is set. The returned publisher is nil otherwise,
// which disables the real-time channel.
func newPublisher(cfg *config.Config, logger *slog.Logger) (domain.NotificationPublisher, func(), error) {
	if cfg.AMQPURL == "" {
		logger.Info("notification publisher disabled")
		return nil, func() {}, nil
	}
	p, err := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq: %w", err)
	}
	return p, func() {
		if err := p.Close(); err != nil {
			logger.Warn("closing publisher", "err", err)
		}
	}, nil
}
