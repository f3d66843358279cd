// Package kafka publishes order notifications to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/metrics"

	skafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// Writer is the subset of kafka.Writer the notifier needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

type warningMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type notificationMessage struct {
	OrderID    string           `json:"order_id"`
	EventType  string           `json:"event_type"`
	Status     string           `json:"status"`
	Warnings   []warningMessage `json:"warnings"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// Notifier implements ports.Notifier. Each notification is written on its
// own goroutine keyed by order ID; failures are logged and counted.
type Notifier struct {
	writer Writer
	logger *zap.Logger
	wg     sync.WaitGroup
}

func NewNotifier(brokers []string, topic string, logger *zap.Logger) *Notifier {
	w := &skafka.Writer{
		Addr:                   skafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &skafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	return NewNotifierWithWriter(w, logger)
}

// NewNotifierWithWriter allows injecting a test writer.
func NewNotifierWithWriter(w Writer, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{writer: w, logger: logger.With(zap.String("component", "kafka_notifier"))}
}

func (n *Notifier) Notify(ctx context.Context, notification ports.Notification) {
	payload, err := json.Marshal(toMessage(notification))
	if err != nil {
		n.fail(notification, err)
		return
	}

	msg := skafka.Message{Key: []byte(notification.OrderID.String()), Value: payload}
	publishCtx := context.WithoutCancel(ctx)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		writeCtx, cancel := context.WithTimeout(publishCtx, publishTimeout)
		defer cancel()

		if err := n.writer.WriteMessages(writeCtx, msg); err != nil {
			n.fail(notification, err)
			return
		}
		n.logger.Debug("notification published",
			zap.String("order_id", notification.OrderID.String()),
			zap.String("event_type", string(notification.EventType)),
		)
	}()
}

// Close waits for in-flight publishes and closes the writer.
func (n *Notifier) Close() error {
	n.wg.Wait()
	return n.writer.Close()
}

func (n *Notifier) fail(notification ports.Notification, err error) {
	metrics.NotificationFailuresTotal.Inc()
	n.logger.Error("failed to publish notification",
		zap.String("order_id", notification.OrderID.String()),
		zap.String("event_type", string(notification.EventType)),
		zap.Error(err),
	)
}

func toMessage(n ports.Notification) notificationMessage {
	warnings := make([]warningMessage, 0, len(n.Warnings))
	for _, w := range n.Warnings {
		warnings = append(warnings, warningMessage{Code: string(w.Code), Message: w.Message})
	}
	return notificationMessage{
		OrderID:    n.OrderID.String(),
		EventType:  string(n.EventType),
		Status:     n.Status.String(),
		Warnings:   warnings,
		OccurredAt: n.OccurredAt.UTC(),
	}
}
