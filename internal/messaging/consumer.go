package messaging

import (
	"context"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const eventIDHeader = "event_id"

var consumerTracer = otel.Tracer("messaging/consumer")

// HandlerFunc applies one stock adjustment payload. A returned error stops
// consumption before the offset is committed, so the adjustment is redelivered.
type HandlerFunc func(ctx context.Context, payload []byte) error

type Consumer struct {
	reader  *kafka.Reader
	topic   string
	groupID string
}

type ConsumerOption func(*kafka.ReaderConfig)

func WithStartOffset(offset int64) ConsumerOption {
	return func(cfg *kafka.ReaderConfig) {
		cfg.StartOffset = offset
	}
}

func NewConsumer(brokers []string, topic, groupID string, opts ...ConsumerOption) *Consumer {
	cfg := kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Consumer{reader: kafka.NewReader(cfg), topic: topic, groupID: groupID}
}

// Consume applies adjustments one at a time, committing each offset only after
// handler succeeds. It blocks until ctx is done or a step fails.
func (c *Consumer) Consume(ctx context.Context, handler HandlerFunc) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		if err := c.apply(ctx, msg, handler); err != nil {
			return err
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit offset %d on partition %d: %w", msg.Offset, msg.Partition, err)
		}
	}
}

func (c *Consumer) apply(ctx context.Context, msg kafka.Message, handler HandlerFunc) error {
	parentCtx := otel.GetTextMapPropagator().Extract(ctx, headerCarrier{msg: &msg})

	spanCtx, span := consumerTracer.Start(parentCtx, "process "+c.topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationTypeDeliver,
			semconv.MessagingDestinationName(c.topic),
			semconv.MessagingKafkaConsumerGroup(c.groupID),
			semconv.MessagingKafkaMessageOffset(int(msg.Offset)),
			semconv.MessagingDestinationPartitionID(strconv.Itoa(msg.Partition)),
		),
		trace.WithAttributes(adjustmentAttributes(msg)...),
	)
	defer span.End()

	if err := handler(spanCtx, msg.Value); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

// adjustmentAttributes names the sku (message key) and event id (header) of a
// stock adjustment message.
func adjustmentAttributes(msg kafka.Message) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		semconv.MessagingKafkaMessageKey(string(msg.Key)),
		attribute.String("inventory.sku_code", string(msg.Key)),
	}
	if id := (headerCarrier{msg: &msg}).Get(eventIDHeader); id != "" {
		attrs = append(attrs, attribute.String("inventory.event_id", id))
	}
	return attrs
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
