// internal/adapters/events/kafka.go
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/internal/core/ports"
	"github.com/ammerola/warehouse-ms/internal/pkg/config"
)

// Event types written in the type header
const (
	TypeIngestCompleted = "warehouse.ingest.completed"
	TypeStockRecounted  = "warehouse.stock.recounted"
)

// Envelope is the JSON body of every published event
type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes ingest events to a Kafka topic
type KafkaPublisher struct {
	writer messageWriter
	now    func() time.Time
	logger *slog.Logger
}

// Statically assert that *KafkaPublisher implements the EventPublisher interface.
var _ ports.EventPublisher = (*KafkaPublisher)(nil)

// NewPublisher returns a Kafka publisher, or NoopPublisher when no broker
// is configured.
func NewPublisher(cfg config.KafkaConfig, logger *slog.Logger) ports.EventPublisher {
	if !cfg.Enabled() {
		logger.Info("no kafka brokers configured, events are dropped")
		return NoopPublisher{}
	}
	return NewKafkaPublisher(cfg, logger)
}

// NewKafkaPublisher creates a publisher writing to cfg.Topic
func NewKafkaPublisher(cfg config.KafkaConfig, logger *slog.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafka.RequireAll,
		Transport:    &kafka.Transport{ClientID: cfg.ClientID},
	}
	logger.Info("kafka publisher configured",
		slog.Any("brokers", cfg.Brokers),
		slog.String("topic", cfg.Topic))
	return newKafkaPublisher(w, logger)
}

func newKafkaPublisher(w messageWriter, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: w,
		now:    time.Now,
		logger: logger.With(slog.String("component", "events")),
	}
}

// PublishIngestCompleted announces a committed ingest keyed by sheet name
func (p *KafkaPublisher) PublishIngestCompleted(ctx context.Context, report *domain.IngestReport) error {
	return p.publish(ctx, TypeIngestCompleted, report.Sheet, report)
}

// PublishStockRecounted announces recounted stock, one message per
// warehouse keyed by warehouse id so counts for a warehouse stay ordered.
func (p *KafkaPublisher) PublishStockRecounted(ctx context.Context, counts []domain.StockCount) error {
	if len(counts) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(counts))
	for _, c := range counts {
		msg, err := p.message(TypeStockRecounted, fmt.Sprint(c.WarehouseID), c)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return p.write(ctx, TypeStockRecounted, msgs...)
}

// Close flushes pending messages and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func (p *KafkaPublisher) publish(ctx context.Context, eventType, key string, data any) error {
	msg, err := p.message(eventType, key, data)
	if err != nil {
		return err
	}
	return p.write(ctx, eventType, msg)
}

func (p *KafkaPublisher) message(eventType, key string, data any) (kafka.Message, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}
	body, err := json.Marshal(Envelope{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: p.now().UTC(),
		Data:       raw,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal %s envelope: %w", eventType, err)
	}
	return kafka.Message{
		Key:     []byte(key),
		Value:   body,
		Headers: []kafka.Header{{Key: "type", Value: []byte(eventType)}},
	}, nil
}

func (p *KafkaPublisher) write(ctx context.Context, eventType string, msgs ...kafka.Message) error {
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}
	p.logger.DebugContext(ctx, "events published",
		slog.String("type", eventType),
		slog.Int("messages", len(msgs)))
	return nil
}

// NoopPublisher drops every event. It is used when no brokers are set.
type NoopPublisher struct{}

// Statically assert that NoopPublisher implements the EventPublisher interface.
var _ ports.EventPublisher = NoopPublisher{}

func (NoopPublisher) PublishIngestCompleted(context.Context, *domain.IngestReport) error { return nil }
func (NoopPublisher) PublishStockRecounted(context.Context, []domain.StockCount) error  { return nil }
func (NoopPublisher) Close() error                                                       { return nil }
