package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/artelbilliards/kolkhoz/internal/common/clock"
	"github.com/artelbilliards/kolkhoz/internal/common/uuid"
	"github.com/artelbilliards/kolkhoz/internal/config"
	"github.com/artelbilliards/kolkhoz/internal/logging"
	"github.com/artelbilliards/kolkhoz/internal/queue"
	gameRepo "github.com/artelbilliards/kolkhoz/internal/repositories/game"
	queueHistoryRepo "github.com/artelbilliards/kolkhoz/internal/repositories/queuehistory"
	sessionRepo "github.com/artelbilliards/kolkhoz/internal/repositories/session"
	svcgame "github.com/artelbilliards/kolkhoz/internal/services/game"
	"github.com/artelbilliards/kolkhoz/internal/settlement"
	httptransport "github.com/artelbilliards/kolkhoz/internal/transport/http"
)

func main() {
	_ = godotenv.Load()

	logCfg, err := config.LoadLog()
	if err != nil {
		panic(err)
	}
	logging.Init(logCfg)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config failed")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
	}

	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatal().Err(err).Msg("session repository init failed")
	}
	games, err := gameRepo.NewRedis(&gameRepo.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatal().Err(err).Msg("game repository init failed")
	}
	history, err := queueHistoryRepo.NewRedis(&queueHistoryRepo.Config{RedisClient: redisClient})
	if err != nil {
		log.Fatal().Err(err).Msg("queue history repository init failed")
	}

	svc, err := svcgame.NewService(&svcgame.Config{
		MinParticipants:        cfg.MinParticipants,
		MaxParticipantsLimit:   cfg.MaxParticipantsLimit,
		DefaultMaxParticipants: cfg.DefaultMaxParticipants,
		SessionRepo:            sessions,
		GameRepo:               games,
		QueueHistoryRepo:       history,
		Generator:              queue.New(nil),
		Calculator: settlement.New(&settlement.Config{
			PointValueMinorUnits: cfg.PointValueMinorUnits,
			PaymentDirection:     settlement.PaymentDirection(cfg.PaymentDirection),
		}),
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("service init failed")
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httptransport.NewRouter(svc),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	if err := redisClient.Close(); err != nil {
		log.Error().Err(err).Msg("redis close error")
	}
}
