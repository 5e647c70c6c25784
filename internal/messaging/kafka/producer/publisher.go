package producer

import (
	"context"
	"time"

	"github.com/davidvasconcellos/PayrollDataExtractor/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "outbox_id", Value: []byte(event.ID)},
		},
	}

	return writer.WriteMessages(publishCtx, msg)
}
