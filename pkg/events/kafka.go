package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

// PublishOrderPlaced keys messages by restaurant so one kitchen sees its tickets in order.
func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, msg OrderPlaced) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal order placed: %w", err)
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(msg.RestaurantID), 10)),
		Value: payload,
	})
}

func (p *KafkaPublisher) Close() error { return p.Writer.Close() }
