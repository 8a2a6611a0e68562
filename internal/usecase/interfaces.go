package usecase

import (
	"context"

	"github.com/jatinenterprises/site-backend/internal/entity"
	"github.com/jatinenterprises/site-backend/internal/infra/integration/identity"
	"github.com/jatinenterprises/site-backend/internal/infra/mail"
	"github.com/jatinenterprises/site-backend/internal/infra/queue"
)

type ContactRepositoryInterface interface {
	Create(ctx context.Context, c *entity.Contact) (string, error)
	List(ctx context.Context) ([]entity.Contact, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Remove(ctx context.Context, id string) error
}

type EmailService interface {
	SendLeadNotification(data mail.LeadNotificationData) error
}

type QueueProducerInterface interface {
	PublishLeadCreated(ctx context.Context, payload queue.LeadCreatedPayload) error
}

type CapabilityChecker interface {
	HasCapability(viewer *identity.Viewer, capability string) bool
}
