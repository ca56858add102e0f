package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	coreentity "gatherly-api/core/entity"
	"gatherly-api/core/logger"
	"gatherly-api/core/queue"
	"gatherly-api/modules/notification/dto"
	"gatherly-api/modules/notification/entity"
	"gatherly-api/modules/notification/repository"

	"github.com/hibiken/asynq"
)

// Worker turns queued tasks into notification rows.
type Worker struct {
	repo repository.NotificationRepositoryInterface
}

func NewWorker(repo repository.NotificationRepositoryInterface) *Worker {
	return &Worker{repo: repo}
}

// Register attaches the task handlers to the mux.
func (w *Worker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TaskAvailabilityChanged, w.HandleAvailabilityChanged)
	mux.HandleFunc(queue.TaskInvitationCreated, w.HandleInvitationCreated)
}

// HandleAvailabilityChanged writes a notification row per recipient.
func (w *Worker) HandleAvailabilityChanged(ctx context.Context, task *asynq.Task) error {
	var payload dto.AvailabilityChangedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal availability-changed payload: %w", err)
	}

	verb := "updated their availability"
	if payload.Removed {
		verb = "removed their availability"
	}
	message := fmt.Sprintf("%s %s for %s in %s", payload.ActorName, verb, payload.Date, payload.EventName)

	for _, recipient := range payload.Recipients {
		eventID := payload.EventID
		notification := &entity.Notification{
			UserID:  recipient,
			EventID: &eventID,
			Type:    entity.TypeAvailabilityChanged,
			Message: message,
			IsRead:  false,
			BaseEntity: coreentity.BaseEntity{
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			},
		}

		if err := w.repo.Create(ctx, notification); err != nil {
			return err
		}
	}

	logger.Info("NotificationWorker:HandleAvailabilityChanged",
		"event_id", payload.EventID,
		"recipients", len(payload.Recipients),
	)
	return nil
}

// HandleInvitationCreated notifies the invited user when their email already
// belongs to an account.
func (w *Worker) HandleInvitationCreated(ctx context.Context, task *asynq.Task) error {
	var payload dto.InvitationCreatedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal invitation-created payload: %w", err)
	}

	userID, err := w.repo.FindUserIDByEmail(ctx, payload.Email)
	if err != nil {
		return err
	}
	if userID == nil {
		logger.Info("NotificationWorker:HandleInvitationCreated:NoAccount", "email", payload.Email)
		return nil
	}

	eventID := payload.EventID
	notification := &entity.Notification{
		UserID:  *userID,
		EventID: &eventID,
		Type:    entity.TypeInvitationReceived,
		Message: fmt.Sprintf("%s invited you to join %s", payload.InviterName, payload.EventName),
		IsRead:  false,
		BaseEntity: coreentity.BaseEntity{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	return w.repo.Create(ctx, notification)
}
