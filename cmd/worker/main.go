package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/avdeev99/travelbot/config"
	"github.com/avdeev99/travelbot/internal/domain"
	"github.com/avdeev99/travelbot/internal/kafka"
	"github.com/avdeev99/travelbot/internal/logger"
	"github.com/avdeev99/travelbot/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// The worker tails the booking event stream and archives completed bookings
// to postgres. Assignment events are logged only.
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

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		zapLogger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	archive := repository.NewArchiveRepository(pool)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingTopic, zapLogger)
	defer consumer.Close()

	err = consumer.ConsumeBookingEvents(ctx, func(ctx context.Context, event kafka.BookingEvent) error {
		switch event.Type {
		case kafka.EventBookingCompleted:
			ticket := domain.TravelTicket{
				ID:            event.TicketID,
				Member:        &domain.Member{Name: event.Traveler},
				Origin:        event.Origin,
				Destination:   event.Destination,
				SelectedRoute: event.SelectedRoute,
				TravelDates:   event.TravelDates,
				Status:        domain.TicketStatus(event.Status),
				BookingDate:   event.BookingDate,
			}
			if err := archive.SaveBooking(ctx, event.ConversationID, ticket); err != nil {
				return err
			}
			total, err := archive.CountBookings(ctx)
			if err != nil {
				zapLogger.Warn("count archived bookings", zap.Error(err))
				total = -1
			}
			zapLogger.Info("archived booking",
				zap.String("ticket", event.TicketID),
				zap.String("destination", event.Destination),
				zap.Int64("total_archived", total))
		case kafka.EventAssignmentGenerated:
			zapLogger.Info("new travel assignment",
				zap.String("conversation", event.ConversationID),
				zap.String("destination", event.Destination))
		default:
			zapLogger.Warn("unknown booking event", zap.String("type", event.Type))
		}
		return nil
	})
	if err != nil && ctx.Err() == nil {
		zapLogger.Fatal("consumer stopped", zap.Error(err))
	}
}
