package configs

import (
	"context"
	"fmt"
	"time"

	"github.com/jefin3273/connect-crave/pkg/events"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// NewRedis returns nil when REDIS_ADDR is empty.
func NewRedis(cfg *Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewEventPublisher returns nil for EVENTS_DRIVER=none.
func NewEventPublisher(cfg *Config) (events.Publisher, error) {
	switch cfg.EventsDriver {
	case "", "none":
		return nil, nil
	case "kafka":
		if len(cfg.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("EVENTS_DRIVER=kafka needs KAFKA_BROKERS")
		}
		return events.NewKafkaPublisher(&kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           10 * time.Millisecond,
			AllowAutoTopicCreation: true,
		}), nil
	case "rabbitmq":
		return newRabbitPublisher(cfg)
	default:
		return nil, fmt.Errorf("unsupported EVENTS_DRIVER %q", cfg.EventsDriver)
	}
}

func newRabbitPublisher(cfg *Config) (events.Publisher, error) {
	if cfg.AMQPURL == "" {
		return nil, fmt.Errorf("EVENTS_DRIVER=rabbitmq needs AMQP_URL")
	}
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(cfg.AMQPExchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return events.NewRabbitPublisher(&rabbitChannel{Channel: ch, conn: conn}, cfg.AMQPExchange), nil
}

// rabbitChannel closes the connection together with the channel.
type rabbitChannel struct {
	*amqp.Channel
	conn *amqp.Connection
}

func (c *rabbitChannel) Close() error {
	c.Channel.Close()
	return c.conn.Close()
}
