package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/joao-fontenele/inventory-stock-service/internal/domain"
)

var producerTracer = otel.Tracer("messaging/producer")

// Producer publishes stock adjustments keyed by sku code. The hash balancer
// sends every adjustment for one sku to the same partition, so the worker
// applies them in publish order.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		topic: topic,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
			BatchTimeout:           50 * time.Millisecond,
		},
	}
}

func (p *Producer) PublishStockAdjusted(ctx context.Context, event domain.StockAdjustedEvent) error {
	msg, err := stockAdjustedMessage(event)
	if err != nil {
		return err
	}

	ctx, span := producerTracer.Start(ctx, "send "+p.topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationTypePublish,
			semconv.MessagingDestinationName(p.topic),
		),
		trace.WithAttributes(adjustmentAttributes(msg)...),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, headerCarrier{msg: &msg})

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("publish adjustment %s for %s: %w", event.EventID, event.SkuCode, err)
	}

	return nil
}

func stockAdjustedMessage(event domain.StockAdjustedEvent) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal stock adjustment: %w", err)
	}

	return kafka.Message{
		Key:     []byte(event.SkuCode),
		Value:   data,
		Headers: []kafka.Header{{Key: eventIDHeader, Value: []byte(event.EventID)}},
	}, nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
