package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"logo-guess-service/internal/domain"
)

// ScoreEvent is the message published for every stored score.
type ScoreEvent struct {
	ID         int64       `json:"id"`
	PlayerName string      `json:"playerName"`
	Score      int         `json:"score"`
	Difficulty domain.Tier `json:"difficulty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// ScorePublisher sends score events to a Kafka topic, keyed by difficulty.
type ScorePublisher struct {
	producer sarama.SyncProducer
	topic    string
	clock    func() time.Time
}

// NewProducerConfig returns the sarama settings used for score events.
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true
	config.Producer.Return.Errors = true
	return config
}

// Dial connects a synchronous producer to brokers.
func Dial(brokers []string, topic string) (*ScorePublisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return NewScorePublisher(producer, topic), nil
}

func NewScorePublisher(producer sarama.SyncProducer, topic string) *ScorePublisher {
	return &ScorePublisher{producer: producer, topic: topic, clock: time.Now}
}

func (p *ScorePublisher) PublishScore(ctx context.Context, record domain.ScoreRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(ScoreEvent{
		ID:         record.ID,
		PlayerName: record.PlayerName,
		Score:      record.Score,
		Difficulty: record.Difficulty,
		CreatedAt:  p.clock().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode score event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(record.Difficulty),
		Value: sarama.ByteEncoder(data),
	}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("publish score %d: %w", record.ID, err)
	}
	return nil
}

func (p *ScorePublisher) Close() error {
	return p.producer.Close()
}
