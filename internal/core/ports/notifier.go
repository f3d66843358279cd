package ports

import (
	"context"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
)

type EventType string

const (
	EventOrderCreated   EventType = "ORDER_CREATED"
	EventRulesEvaluated EventType = "RULES_EVALUATED"
	EventStatusChanged  EventType = "STATUS_CHANGED"
)

// Notification is handed to the notification collaborator after a rule
// evaluation or a status change.
type Notification struct {
	OrderID    kernel.UUID
	EventType  EventType
	Status     order.Status
	Warnings   []order.Warning
	OccurredAt time.Time
}

// Notifier delivers notifications fire-and-forget. Notify must not block on
// delivery and never fails the caller.
type Notifier interface {
	Notify(ctx context.Context, notification Notification)
}
