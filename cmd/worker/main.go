package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Domenick1991/turfbooking/config"
	"github.com/Domenick1991/turfbooking/internal/cache"
	"github.com/Domenick1991/turfbooking/internal/email"
	"github.com/Domenick1991/turfbooking/internal/kafka"
	"github.com/Domenick1991/turfbooking/internal/repository"
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
	log := logger.Init(logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, Service: "turf-worker"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis)
	defer redisCache.Close()

	slotService := slots.NewSlotService(repository.NewSlotRepository(pool), redisCache, log)

	if len(cfg.Kafka.Brokers) > 0 {
		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, log)
		defer consumer.Close()

		sender := email.NewSender(log)
		go func() {
			if err := consumer.Consume(ctx, kafka.NotificationHandler(log, sender.Send)); err != nil {
				log.Error().Err(err).Msg("consumer stopped")
			}
		}()
	} else {
		log.Warn().Msg("no kafka brokers configured, notification consumer disabled")
	}

	if cfg.Worker.PregenerateDays <= 0 {
		log.Info().Msg("slot pregeneration disabled")
		<-ctx.Done()
		return
	}

	pregenerate(ctx, slotService, cfg.Worker.PregenerateDays, log)

	ticker := time.NewTicker(time.Duration(cfg.Worker.PregenerateSweepHours) * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pregenerate(ctx, slotService, cfg.Worker.PregenerateDays, log)
		case <-ctx.Done():
			log.Info().Msg("worker shutting down")
			return
		}
	}
}

func pregenerate(ctx context.Context, svc slots.SlotUseCase, days int, log zerolog.Logger) {
	if err := svc.EnsureDaysAhead(ctx, time.Now(), days); err != nil {
		log.Error().Err(err).Int("days", days).Msg("pregenerate slots")
		return
	}
	log.Debug().Int("days", days).Msg("slots pregenerated")
}
