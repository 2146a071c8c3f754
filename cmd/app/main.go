package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/Domenick1991/turfbooking/api"
	"github.com/Domenick1991/turfbooking/config"
	"github.com/Domenick1991/turfbooking/internal/auth"
	"github.com/Domenick1991/turfbooking/internal/bootstrap"
	"github.com/Domenick1991/turfbooking/internal/cache"
	"github.com/Domenick1991/turfbooking/internal/kafka"
	"github.com/Domenick1991/turfbooking/internal/notify"
	"github.com/Domenick1991/turfbooking/internal/repository"
	"github.com/Domenick1991/turfbooking/internal/service/booking"
	"github.com/Domenick1991/turfbooking/internal/service/credentials"
	"github.com/Domenick1991/turfbooking/internal/service/slots"
	"github.com/Domenick1991/turfbooking/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logger.Init(logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, Service: "turf-app"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := repository.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migrate schema")
		}
	}

	redisCache := cache.NewRedisCache(cfg.Redis)
	defer redisCache.Close()

	var notifier notify.Notifier = notify.NewLogNotifier(cfg.Booking.OwnerEmail, log)
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
		defer producer.Close()
		notifier = notify.NewKafkaNotifier(producer, cfg.Kafka.NotificationsTopic, cfg.Booking.OwnerEmail)
	}

	if cfg.Auth.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}
	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())

	userRepo := repository.NewUserRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	credentialService := credentials.NewCredentialService(userRepo, issuer, log, credentials.WithRevoker(redisCache))
	slotService := slots.NewSlotService(slotRepo, redisCache, log)
	bookingService := booking.NewBookingService(
		bookingRepo,
		userRepo,
		log,
		booking.WithNotifier(notifier),
		booking.WithPageSize(cfg.Booking.PageSize),
	)

	err = bootstrap.Run(ctx, cfg, bootstrap.Deps{
		Credentials: credentialService,
		Slots:       slotService,
		Bookings:    bookingService,
		Tokens:      issuer,
		Revocations: redisCache,
		Health: map[string]api.Pinger{
			"postgres": pool,
			"redis":    redisCache,
		},
		Log: log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
