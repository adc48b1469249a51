package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/proposal-service/internal/config"
	"github.com/spec-kit/proposal-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventProposalCreated, n.handleProposalCreated)
	n.dispatcher.Subscribe(events.EventProposalStatusChanged, n.handleStatusChanged)
	n.dispatcher.Subscribe(events.EventProposalShared, n.handleProposalShared)
	n.dispatcher.Subscribe(events.EventInvitationAccepted, n.handleInvitationAccepted)
	n.dispatcher.Subscribe(events.EventAccessRevoked, n.handleAccessRevoked)
	n.dispatcher.Subscribe(events.EventUserCreated, n.handleUserCreated)
}

func (n *NotificationService) handleProposalCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ProposalCreated", zap.String("proposal_id", event.ProposalID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("ProposalStatusChanged", zap.String("proposal_id", event.ProposalID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleProposalShared(ctx context.Context, event events.Event) error {
	n.logger.Info("ProposalShared", zap.String("proposal_id", event.ProposalID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleInvitationAccepted(ctx context.Context, event events.Event) error {
	n.logger.Info("InvitationAccepted", zap.String("proposal_id", event.ProposalID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAccessRevoked(ctx context.Context, event events.Event) error {
	n.logger.Info("AccessRevoked", zap.String("proposal_id", event.ProposalID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleUserCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("UserCreated", zap.String("actor", event.Actor), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("proposal_id", event.ProposalID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("proposal_id", event.ProposalID),
		zap.String("event_type", string(event.Type)))
}
