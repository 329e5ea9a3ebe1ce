package publish

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/strikeoutcenter/propsfeed/pkg/contracts/events"
)

// KafkaPublisher announces feed refreshes so downstream consumers (site
// rebuilds, alerting) don't have to poll the artifact directory.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

// NewKafkaPublisher creates a publisher for the feed topic.
func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		ReadTimeout:            10 * time.Second,
		WriteTimeout:           10 * time.Second,
	}

	return &KafkaPublisher{
		writer: writer,
		log:    log,
	}
}

// Publish serializes the event as JSON keyed by feed date, so all
// refreshes for one day land on one partition in order.
func (p *KafkaPublisher) Publish(ctx context.Context, e events.FeedRefreshed) error {
	value, err := json.Marshal(e)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(e.Date),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("failed to publish feed refresh", zap.Error(err))
		return err
	}

	p.log.Debug("published feed refresh", zap.String("date", e.Date))
	return nil
}

// Close finalizes the writer and releases its resources.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
