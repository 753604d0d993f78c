package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"fiturae/internal/config"
	"fiturae/pkg/logger"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher синхронно пишет события в один топик.
// Ключом сообщения служит идентификатор тренировки, поэтому события одной
// тренировки попадают в одну партицию и сохраняют порядок.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	log    logger.Logger
}

var _ Publisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher создаёт издателя по конфигурации Kafka.
func NewKafkaPublisher(cfg *config.KafkaConfig, log logger.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		Async:        false,
		WriteTimeout: 5 * time.Second,
	}
	return newKafkaPublisher(writer, cfg.Topic, log)
}

func newKafkaPublisher(writer messageWriter, topic string, log logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, topic: topic, log: log}
}

// Publish сериализует событие в JSON и отправляет его в Kafka.
func (p *KafkaPublisher) Publish(ctx context.Context, event WorkoutEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("ошибка сериализации события %s: %w", event.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.WorkoutID),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("ошибка отправки события %s в топик %s: %w", event.Type, p.topic, err)
	}

	p.log.Info("событие опубликовано", map[string]any{
		"type":       event.Type,
		"workout_id": event.WorkoutID,
		"topic":      p.topic,
	})
	return nil
}

// Close закрывает writer и дожидается отправки буферизованных сообщений.
func (p *KafkaPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия Kafka writer: %w", err)
	}
	return nil
}
