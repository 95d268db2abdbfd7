package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer publishes domain events to Kafka. Publishing is best-effort: a
// failed write is logged and dropped, it never fails the originating request.
type Producer interface {
	Publish(ctx context.Context, topic string, key int64, event interface{})
	Close() error
}

type kafkaProducer struct {
	log    *slog.Logger
	writer *kafka.Writer
}

func NewProducer(log *slog.Logger, brokers []string) Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		Async:        true,
		RequiredAcks: kafka.RequireOne,
	}
	return &kafkaProducer{log: log, writer: writer}
}

func (p *kafkaProducer) Publish(ctx context.Context, topic string, key int64, event interface{}) {
	value, err := json.Marshal(event)
	if err != nil {
		p.log.Error("failed to marshal event", slog.String("topic", topic), slog.Any("error", err))
		return
	}
	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(strconv.FormatInt(key, 10)),
		Value: value,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("failed to publish event", slog.String("topic", topic), slog.Int64("key", key), slog.Any("error", err))
	}
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

// TransactionEvent mirrors a committed wallet transaction on the event bus.
type TransactionEvent struct {
	Type           string    `json:"type"`
	UserID         int64     `json:"user_id"`
	AmountCoins    int64     `json:"amount_coins"`
	AmountDiamonds int64     `json:"amount_diamonds"`
	RelatedUserID  *int64    `json:"related_user_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// OrderEvent tracks order lifecycle changes.
type OrderEvent struct {
	OrderID   int64     `json:"order_id"`
	UserID    int64     `json:"user_id"`
	Status    string    `json:"status"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}
