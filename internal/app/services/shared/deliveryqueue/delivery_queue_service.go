package deliveryqueue

import (
	"context"
	"fmt"
	"sync"

	"oneroom-connector/internal/pkg/constvars"
	"oneroom-connector/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	StandardQueueName   = "oneroom_room_event_queue"
	DeadLetterQueueName = "oneroom_room_event_dlq"
)

// QueueMessage is the unit stored in RabbitMQ. Payload holds the serialized
// RoomEvent; FailedCount tracks delivery attempts across worker ticks.
type QueueMessage struct {
	ID          string          `json:"id"`
	EventID     string          `json:"event_id"`
	Payload     json.RawMessage `json:"payload"`
	FailedCount int             `json:"failed_count"`
}

// QueuedItem pairs a fetched message with its delivery tag for later ack.
type QueuedItem struct {
	DeliveryTag uint64
	Message     QueueMessage
}

// Service manages the durable room-event queue and its dead-letter queue.
// Publishes are persistent and wait for broker confirms.
type Service struct {
	ch       *amqp.Channel
	log      *zap.Logger
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

func NewService(conn *amqp.Connection, log *zap.Logger, prefetch int) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	for _, name := range []string{StandardQueueName, DeadLetterQueueName} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return nil, err
		}
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &Service{
		ch:       ch,
		log:      log,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

// Enqueue publishes a message to the standard queue tail.
func (s *Service) Enqueue(ctx context.Context, msg QueueMessage) error {
	s.log.Info("deliveryQueue.Enqueue called",
		zap.String(constvars.LoggingMessageIDKey, msg.ID),
		zap.String(constvars.LoggingEventIDKey, msg.EventID),
	)
	return s.publish(ctx, StandardQueueName, msg)
}

// Reenqueue puts a failed message back on the standard queue with its
// updated failed count.
func (s *Service) Reenqueue(ctx context.Context, msg QueueMessage) error {
	s.log.Info("deliveryQueue.Reenqueue called",
		zap.String(constvars.LoggingMessageIDKey, msg.ID),
		zap.Int(constvars.LoggingFailedCountKey, msg.FailedCount),
	)
	return s.publish(ctx, StandardQueueName, msg)
}

// EnqueueToDeadQueue parks a message that exhausted its retry budget.
func (s *Service) EnqueueToDeadQueue(ctx context.Context, msg QueueMessage) error {
	s.log.Warn("deliveryQueue.EnqueueToDeadQueue called",
		zap.String(constvars.LoggingMessageIDKey, msg.ID),
		zap.String(constvars.LoggingEventIDKey, msg.EventID),
		zap.Int(constvars.LoggingFailedCountKey, msg.FailedCount),
	)
	return s.publish(ctx, DeadLetterQueueName, msg)
}

// FetchN retrieves up to n messages via basic.get without auto-ack. Messages
// with undecodable payloads are acked and moved to the DLQ so they cannot
// poison the loop.
func (s *Service) FetchN(ctx context.Context, n int) ([]QueuedItem, error) {
	if n <= 0 {
		n = 1
	}
	items := make([]QueuedItem, 0, n)
	for i := 0; i < n; i++ {
		d, ok, err := s.ch.Get(StandardQueueName, false)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		var msg QueueMessage
		if err := json.Unmarshal(d.Body, &msg); err != nil {
			_ = d.Ack(false)
			_ = s.publishRaw(ctx, DeadLetterQueueName, d.Body)
			continue
		}
		items = append(items, QueuedItem{DeliveryTag: d.DeliveryTag, Message: msg})
	}
	return items, nil
}

// AckMessage removes a message from the queue by delivery tag.
func (s *Service) AckMessage(deliveryTag uint64) error {
	return s.ch.Ack(deliveryTag, false)
}

func (s *Service) publish(ctx context.Context, queue string, msg QueueMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return s.publishRaw(ctx, queue, body)
}

func (s *Service) publishRaw(ctx context.Context, queue string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	publishing := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}
	if err := s.ch.PublishWithContext(ctx, "", queue, false, false, publishing); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queue)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), queue)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), queue)
	}
	return nil
}
