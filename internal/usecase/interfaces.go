package usecase

import (
	"context"

	"github.com/xavierca1/prospect-crm/internal/infra/queue"
)

type EmailService interface {
	SendDigest(to, subject, body string) error
	SendFollowUpUpdated(to, firstName, lastName, company, followUpDate string) error
}

type QueueProducerInterface interface {
	PublishFollowUpUpdated(ctx context.Context, payload queue.FollowUpUpdatedPayload) error
}
