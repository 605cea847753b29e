package mq

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"BrewMasterAI/app/services/chat/internal/svc"
)

// PublishOrderConfirmed sends the order confirmed event to Kafka. A missing
// writer means Kafka is not configured and the publish is skipped.
func PublishOrderConfirmed(ctx context.Context, sc *svc.ServiceContext, evt OrderConfirmedEvent) error {
	if sc.KafkaWriter == nil {
		return nil
	}

	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	return sc.KafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.OrderNumber),
		Value: body,
	})
}
