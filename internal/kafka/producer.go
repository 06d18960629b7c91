package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// BookingEvent is published on every booking completion and on every new
// travel assignment. The archive worker consumes these.
type BookingEvent struct {
	Type           string `json:"type"`
	TicketID       string `json:"ticket_id,omitempty"`
	ConversationID string `json:"conversation_id"`
	Traveler       string `json:"traveler,omitempty"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	SelectedRoute  string `json:"selected_route,omitempty"`
	TravelDates    string `json:"travel_dates"`
	BookingDate    string `json:"booking_date,omitempty"`
	Status         string `json:"status"`
}

const (
	EventBookingCompleted    = "booking_completed"
	EventAssignmentGenerated = "assignment_generated"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
