package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/SAP-F-2025/tutoring-service/internal/config"
	"github.com/SAP-F-2025/tutoring-service/internal/utils"
)

// WatermillPublisher publishes events as JSON messages, one topic per event type
type WatermillPublisher struct {
	publisher   message.Publisher
	topicPrefix string
	logger      utils.Logger
}

func NewWatermillPublisher(publisher message.Publisher, topicPrefix string, logger utils.Logger) *WatermillPublisher {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &WatermillPublisher{
		publisher:   publisher,
		topicPrefix: topicPrefix,
		logger:      logger,
	}
}

// NewKafkaEventPublisher connects to the configured brokers
func NewKafkaEventPublisher(cfg config.KafkaConfig, logger utils.Logger) (*WatermillPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   cfg.Brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		NewLoggerAdapter(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}
	return NewWatermillPublisher(publisher, cfg.TopicPrefix, logger), nil
}

// NewInProcessEventPublisher keeps events inside the process. The returned channel can be
// subscribed to by in-process consumers.
func NewInProcessEventPublisher(topicPrefix string, logger utils.Logger) (*WatermillPublisher, *gochannel.GoChannel) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, NewLoggerAdapter(logger))
	return NewWatermillPublisher(pubSub, topicPrefix, logger), pubSub
}

// NewEventPublisher picks kafka when brokers are configured
func NewEventPublisher(cfg config.KafkaConfig, logger utils.Logger) (EventPublisher, error) {
	if cfg.Enabled() {
		return NewKafkaEventPublisher(cfg, logger)
	}
	publisher, _ := NewInProcessEventPublisher(cfg.TopicPrefix, logger)
	return publisher, nil
}

// Topic is the topic an event type is published to
func (p *WatermillPublisher) Topic(eventType string) string {
	return p.topicPrefix + eventType
}

func (p *WatermillPublisher) Publish(ctx context.Context, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.Type, err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("type", event.Type)
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.SetContext(ctx)

	topic := p.Topic(event.Type)
	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.Type, err)
	}

	p.logger.Debug("Event published", "topic", topic, "event_id", event.ID)
	return nil
}

func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}
