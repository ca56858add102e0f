package service

import (
	"context"

	"gatherly-api/core/queue"
	"gatherly-api/modules/notification/dto"
)

// Publisher enqueues notification tasks for asynchronous delivery.
type Publisher struct{}

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) PublishAvailabilityChanged(ctx context.Context, payload dto.AvailabilityChangedPayload) error {
	return queue.Enqueue(ctx, queue.TaskAvailabilityChanged, payload)
}

func (p *Publisher) PublishInvitationCreated(ctx context.Context, payload dto.InvitationCreatedPayload) error {
	return queue.Enqueue(ctx, queue.TaskInvitationCreated, payload)
}
