package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avdeev99/travelbot/config"
	"github.com/avdeev99/travelbot/internal/bootstrap"
	"github.com/avdeev99/travelbot/internal/kafka"
	"github.com/avdeev99/travelbot/internal/llm"
	"github.com/avdeev99/travelbot/internal/logger"
	"github.com/avdeev99/travelbot/internal/service/assistant"
	"github.com/avdeev99/travelbot/internal/store"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zapLogger, err := logger.New()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisStore := store.NewRedisStore(cfg.Redis)
	defer redisStore.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	service := assistant.NewAssistantService(
		redisStore,
		producer,
		cfg.Kafka.BookingTopic,
		zapLogger,
		assistant.WithModelTimeout(time.Duration(cfg.Model.TimeoutSeconds)*time.Second),
	)

	model, err := llm.NewGeminiModel(ctx, cfg.Model, service, zapLogger)
	if err != nil {
		zapLogger.Fatal("init gemini model", zap.Error(err))
	}
	defer model.Close()
	service.AttachModel(model)

	// Seed the default conversation slot so a current ticket exists before
	// the first event; seeding never overwrites prior state.
	if err := service.Seed(ctx, ""); err != nil {
		zapLogger.Fatal("seed booking state", zap.Error(err))
	}

	if err := bootstrap.Run(ctx, cfg, service, zapLogger); err != nil {
		zapLogger.Fatal("server error", zap.Error(err))
	}
}
