package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"gatherly-api/core/params"
	"gatherly-api/core/queue"
	"gatherly-api/modules/notification/dto"
	"gatherly-api/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type fakeNotificationRepo struct {
	created      []entity.Notification
	usersByEmail map[string]uuid.UUID
}

func (f *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	f.created = append(f.created, *notification)
	return nil
}

func (f *fakeNotificationRepo) GetByUserID(ctx context.Context, userID uuid.UUID, p params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return &entity.PaginatedNotificationEntity{}, nil
}

func (f *fakeNotificationRepo) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error {
	return nil
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return 0, nil
}

func (f *fakeNotificationRepo) FindUserIDByEmail(ctx context.Context, email string) (*uuid.UUID, error) {
	if id, ok := f.usersByEmail[email]; ok {
		return &id, nil
	}
	return nil, nil
}

func mustTask(t *testing.T, taskType string, payload any) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	return asynq.NewTask(taskType, data)
}

func TestHandleAvailabilityChangedWritesRowPerRecipient(t *testing.T) {
	repo := &fakeNotificationRepo{}
	worker := NewWorker(repo)

	eventID := uuid.New()
	recipients := []uuid.UUID{uuid.New(), uuid.New()}
	payload := dto.AvailabilityChangedPayload{
		EventID:    eventID,
		EventName:  "Game night",
		ActorID:    uuid.New(),
		ActorName:  "Alice",
		Date:       "2026-03-10",
		Recipients: recipients,
	}

	task := mustTask(t, queue.TaskAvailabilityChanged, payload)
	if err := worker.HandleAvailabilityChanged(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.created) != 2 {
		t.Fatalf("expected a row per recipient, got %d", len(repo.created))
	}
	for i, row := range repo.created {
		if row.UserID != recipients[i] {
			t.Fatalf("row %d addressed to %v, expected %v", i, row.UserID, recipients[i])
		}
		if row.Type != entity.TypeAvailabilityChanged {
			t.Fatalf("unexpected type %s", row.Type)
		}
		if row.EventID == nil || *row.EventID != eventID {
			t.Fatalf("expected the event on the row, got %v", row.EventID)
		}
		if !strings.Contains(row.Message, "Alice") || !strings.Contains(row.Message, "Game night") {
			t.Fatalf("unexpected message: %s", row.Message)
		}
		if !strings.Contains(row.Message, "updated") {
			t.Fatalf("expected an update message, got: %s", row.Message)
		}
	}
}

func TestHandleAvailabilityChangedRemoval(t *testing.T) {
	repo := &fakeNotificationRepo{}
	worker := NewWorker(repo)

	payload := dto.AvailabilityChangedPayload{
		EventID:    uuid.New(),
		EventName:  "Game night",
		ActorName:  "Alice",
		Date:       "2026-03-10",
		Removed:    true,
		Recipients: []uuid.UUID{uuid.New()},
	}

	task := mustTask(t, queue.TaskAvailabilityChanged, payload)
	if err := worker.HandleAvailabilityChanged(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected one row, got %d", len(repo.created))
	}
	if !strings.Contains(repo.created[0].Message, "removed") {
		t.Fatalf("expected a removal message, got: %s", repo.created[0].Message)
	}
}

func TestHandleInvitationCreated(t *testing.T) {
	friend := uuid.New()
	repo := &fakeNotificationRepo{
		usersByEmail: map[string]uuid.UUID{"friend@example.com": friend},
	}
	worker := NewWorker(repo)

	eventID := uuid.New()
	payload := dto.InvitationCreatedPayload{
		InvitationID: uuid.New(),
		EventID:      eventID,
		EventName:    "Game night",
		InviterName:  "Alice",
		Email:        "friend@example.com",
	}

	task := mustTask(t, queue.TaskInvitationCreated, payload)
	if err := worker.HandleInvitationCreated(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected one row, got %d", len(repo.created))
	}
	row := repo.created[0]
	if row.UserID != friend {
		t.Fatalf("expected the row for the invited user, got %v", row.UserID)
	}
	if row.Type != entity.TypeInvitationReceived {
		t.Fatalf("unexpected type %s", row.Type)
	}
}

func TestHandleInvitationCreatedNoAccount(t *testing.T) {
	repo := &fakeNotificationRepo{}
	worker := NewWorker(repo)

	payload := dto.InvitationCreatedPayload{
		EventID:   uuid.New(),
		EventName: "Game night",
		Email:     "stranger@example.com",
	}

	task := mustTask(t, queue.TaskInvitationCreated, payload)
	if err := worker.HandleInvitationCreated(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("expected no rows when the email has no account, got %d", len(repo.created))
	}
}
