package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the part of *amqp.Channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type RabbitPublisher struct {
	ch       Channel
	exchange string
}

func NewRabbitPublisher(ch Channel, exchange string) *RabbitPublisher {
	return &RabbitPublisher{ch: ch, exchange: exchange}
}

// RoutingKey is order.placed.<restaurantId>.
func RoutingKey(restaurantID uint) string {
	return fmt.Sprintf("order.placed.%d", restaurantID)
}

func (p *RabbitPublisher) PublishOrderPlaced(ctx context.Context, msg OrderPlaced) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal order placed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(ctx, p.exchange, RoutingKey(msg.RestaurantID), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    msg.PlacedAt,
		Type:         msg.Type,
		Body:         body,
	})
}

func (p *RabbitPublisher) Close() error { return p.ch.Close() }
