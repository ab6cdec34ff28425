package summary

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Publisher delivers summary events downstream.
type Publisher interface {
	Publish(ctx context.Context, event Summarized) error
}

// NoopPublisher discards events. It is used when Kafka is not configured.
type NoopPublisher struct{}

// Publish implements Publisher.
func (NoopPublisher) Publish(context.Context, Summarized) error { return nil }

type messageWriter interface {
	WriteMessages(context.Context, string, ...kafka.Message) error
}

type schemaRegistrar interface {
	EnsureSchema(context.Context, string, string) (int, error)
}

// Option configures optional behaviour for the KafkaPublisher.
type Option func(*KafkaPublisher)

// WithLogger overrides the logger used to report publish failures.
func WithLogger(logger *log.Logger) Option {
	return func(p *KafkaPublisher) {
		p.logger = logger
	}
}

// WithSchemaRegistry resolves schema ids through the given registry. Without
// one, events are framed with schema id 0.
func WithSchemaRegistry(registry schemaRegistrar) Option {
	return func(p *KafkaPublisher) {
		p.registry = registry
	}
}

// KafkaPublisher writes summary events to a single topic using Confluent
// wire framing.
type KafkaPublisher struct {
	producer      messageWriter
	registry      schemaRegistrar
	topic         string
	logger        *log.Logger
	schemaIDCache sync.Map
}

// NewKafkaPublisher constructs a KafkaPublisher for topic.
func NewKafkaPublisher(producer messageWriter, topic string, opts ...Option) *KafkaPublisher {
	p := &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   log.New(log.Writer(), "[summary] ", log.LstdFlags|log.Lshortfile),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Subject returns the schema registry subject used for the topic.
func (p *KafkaPublisher) Subject() string {
	return p.topic + "-value"
}

// Publish implements Publisher.
func (p *KafkaPublisher) Publish(ctx context.Context, event Summarized) error {
	start := time.Now()
	defer func() { publishDuration.Observe(time.Since(start).Seconds()) }()

	if err := p.publish(ctx, event); err != nil {
		publishFailedCounter.Inc()
		p.logger.Printf("publish failed (report_id=%s, topic=%s): %v", event.ReportID, p.topic, err)
		return err
	}
	publishedCounter.Inc()
	return nil
}

func (p *KafkaPublisher) publish(ctx context.Context, event Summarized) error {
	schemaID, err := p.schemaID(ctx)
	if err != nil {
		return fmt.Errorf("resolve schema: %w", err)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.TenantID + ":" + event.Subject),
		Value: encodeWireFormat(schemaID, payload),
		Time:  event.ComputedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventType)},
			{Key: "tenant_id", Value: []byte(event.TenantID)},
			{Key: "schema_subject", Value: []byte(p.Subject())},
			{Key: "report_id", Value: []byte(event.ReportID)},
		},
	}
	return p.producer.WriteMessages(ctx, p.topic, msg)
}

func (p *KafkaPublisher) schemaID(ctx context.Context) (int, error) {
	if p.registry == nil {
		return 0, nil
	}
	subject := p.Subject()
	if id, ok := p.schemaIDCache.Load(subject); ok {
		return id.(int), nil
	}
	id, err := p.registry.EnsureSchema(ctx, subject, summarizedSchema)
	if err != nil {
		return 0, err
	}
	p.schemaIDCache.Store(subject, id)
	return id, nil
}

// encodeWireFormat applies Confluent framing for Schema Registry aware payloads.
func encodeWireFormat(schemaID int, payload []byte) []byte {
	frame := make([]byte, 5+len(payload))
	frame[0] = 0
	binary.BigEndian.PutUint32(frame[1:5], uint32(schemaID))
	copy(frame[5:], payload)
	return frame
}

// DecodeWireFormat splits a framed value into its schema id and JSON payload.
func DecodeWireFormat(value []byte) (int, []byte, error) {
	if len(value) < 5 || value[0] != 0 {
		return 0, nil, fmt.Errorf("invalid payload framing (length=%d)", len(value))
	}
	return int(binary.BigEndian.Uint32(value[1:5])), value[5:], nil
}
