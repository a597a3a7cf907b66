package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/furniture-store/internal/config"
	"github.com/spec-kit/furniture-store/internal/events"
)

type channel uint8

const (
	channelEmail channel = 1 << iota
	channelWebhook
)

// routes says which delivery channels each event goes to.
var routes = map[events.EventType]channel{
	events.EventUserLevelChanged:      channelWebhook,
	events.EventOrderPlaced:           channelEmail | channelWebhook,
	events.EventOrderStatusChanged:    channelEmail,
	events.EventSupportRequestCreated: channelWebhook,
}

// NotificationService turns store events into log lines and stubbed email or webhook deliveries.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{logger: logger, cfg: cfg}
}

// Notify records event and hands it to the channels routed for its type. Unknown types are ignored.
func (n *NotificationService) Notify(ctx context.Context, event events.Event) error {
	route, ok := routes[event.Type]
	if !ok {
		return nil
	}
	n.logger.Info("store event",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID),
		zap.Int64("subject_id", event.SubjectID),
		zap.Any("payload", event.Payload))

	if route&channelEmail != 0 {
		n.sendEmailStub(ctx, event)
	}
	if route&channelWebhook != 0 {
		n.sendWebhookStub(ctx, event)
	}
	return nil
}

func (n *NotificationService) sendEmailStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("email notification",
		zap.String("from", n.cfg.EmailFrom),
		zap.Int64("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("webhook notification",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
