package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/furniture-store/internal/events"
)

// Notifier reacts to a published store event.
type Notifier interface {
	Notify(ctx context.Context, event events.Event) error
}

// StartNotificationWorker subscribes notifier to every store event. Delivery is best effort:
// a notifier failure is logged and never fails the publishing request.
func StartNotificationWorker(dispatcher events.Dispatcher, notifier Notifier, logger *zap.Logger) {
	if dispatcher == nil || notifier == nil {
		return
	}
	handler := func(ctx context.Context, event events.Event) error {
		if err := notifier.Notify(ctx, event); err != nil {
			logger.Warn("notification failed",
				zap.String("event_type", string(event.Type)),
				zap.String("event_id", event.ID),
				zap.Error(err))
		}
		return nil
	}
	for _, eventType := range events.AllTypes() {
		dispatcher.Subscribe(eventType, handler)
	}
}
