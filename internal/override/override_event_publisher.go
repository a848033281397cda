package override

import (
	"context"
	"encoding/json"
	"strconv"

	"fleetops/internal/events"

	"github.com/segmentio/kafka-go"
)

type EventPublisher interface {
	PublishOverrideCreated(ctx context.Context, event events.OverrideCreatedEvent) error
}

type noopEventPublisher struct{}

func NewNoopEventPublisher() EventPublisher {
	return noopEventPublisher{}
}

func (noopEventPublisher) PublishOverrideCreated(context.Context, events.OverrideCreatedEvent) error {
	return nil
}

type kafkaEventPublisher struct {
	writer *kafka.Writer
}

func NewKafkaEventPublisher(writer *kafka.Writer) EventPublisher {
	return &kafkaEventPublisher{writer: writer}
}

func (p *kafkaEventPublisher) PublishOverrideCreated(
	ctx context.Context,
	event events.OverrideCreatedEvent,
) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: events.OverrideCreatedTopic,
		Key:   []byte(strconv.FormatUint(uint64(event.DriverID), 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	})
}
