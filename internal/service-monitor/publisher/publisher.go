package publisher

import (
	"Service_Monitor/internal/service-monitor/model"
	"Service_Monitor/pkg/infra"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=publisher.go -destination=../mocks/publisher/mock_publisher.go -package=mockpublisher

type CheckPublisher interface {
	Publish(ctx context.Context, serviceID string, check model.CheckResult) error
	Close() error
}

type checkEvent struct {
	ServiceID      string    `json:"service_id"`
	Timestamp      time.Time `json:"timestamp"`
	Status         string    `json:"status"`
	StatusNumeric  int       `json:"status_numeric"` // 1 for up, 0 for down
	ResponseTimeMs int64     `json:"response_time_ms"`
	Error          string    `json:"error,omitempty"`
}

type kafkaCheckPublisher struct {
	writer infra.KafkaWriter
}

func (k *kafkaCheckPublisher) Publish(ctx context.Context, serviceID string, check model.CheckResult) error {
	event := checkEvent{
		ServiceID:      serviceID,
		Timestamp:      check.Timestamp,
		Status:         check.Status,
		ResponseTimeMs: check.ResponseTimeMs,
		Error:          check.Error,
	}
	if check.IsUp() {
		event.StatusNumeric = 1
	}
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("CheckPublisher.Publish: %w", err)
	}
	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(serviceID),
		Value: b,
	})
	if err != nil {
		return fmt.Errorf("CheckPublisher.Publish: %w", err)
	}
	return nil
}

func (k *kafkaCheckPublisher) Close() error {
	return k.writer.Close()
}

func NewKafkaCheckPublisher(writer infra.KafkaWriter) CheckPublisher {
	return &kafkaCheckPublisher{
		writer: writer,
	}
}

type noopCheckPublisher struct{}

func (noopCheckPublisher) Publish(context.Context, string, model.CheckResult) error {
	return nil
}

func (noopCheckPublisher) Close() error {
	return nil
}

// NewNoopCheckPublisher is used when no brokers are configured.
func NewNoopCheckPublisher() CheckPublisher {
	return noopCheckPublisher{}
}
