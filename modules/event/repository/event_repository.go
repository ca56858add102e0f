package repository

import (
	"context"
	"database/sql"
	"time"

	"gatherly-api/core/database"
	"gatherly-api/core/logger"
	"gatherly-api/modules/event/entity"

	"github.com/google/uuid"
)

// EventRepository handles event and participant database operations
type EventRepository struct {
	DB database.Database
}

// NewEventRepository creates a new repository instance
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{DB: db}
}

// EventRepositoryInterface defines the repository contract
type EventRepositoryInterface interface {
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountCreatedBy(ctx context.Context, userID uuid.UUID) (int, error)

	GetParticipants(ctx context.Context, eventID uuid.UUID) ([]entity.Participant, error)
	IsParticipant(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (bool, error)
	AddParticipant(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) error
	RemoveParticipant(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) error
	SyncParticipants(ctx context.Context, eventID uuid.UUID, userIDs []uuid.UUID) error
}

// ===================== Events =====================

func (r *EventRepository) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (name, slug, color, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, slug, color, created_by, created_at, updated_at
	`

	var created entity.Event
	err := r.DB.GetContext(ctx, &created, query,
		event.Name, event.Slug, event.Color, event.CreatedBy)
	if err != nil {
		logger.Error("EventRepository:Create", "error", err)
		return nil, err
	}

	return &created, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `
		SELECT id, name, slug, color, created_by, created_at, updated_at
		FROM events WHERE id = $1
	`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetByID", "error", err)
		return nil, err
	}

	return &event, nil
}

func (r *EventRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]entity.Event, error) {
	query := `
		SELECT e.id, e.name, e.slug, e.color, e.created_by, e.created_at, e.updated_at
		FROM events e
		JOIN event_users eu ON eu.event_id = e.id
		WHERE eu.user_id = $1
		ORDER BY e.created_at DESC
	`

	var events []entity.Event
	err := r.DB.SelectContext(ctx, &events, query, userID)
	if err != nil {
		logger.Error("EventRepository:ListByMember", "error", err)
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET name = $2, slug = $3, color = $4, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query, event.ID, event.Name, event.Slug, event.Color)
	if err != nil {
		logger.Error("EventRepository:Update", "error", err)
		return err
	}

	return nil
}

// Delete removes the event together with its availability rows and
// participant links.
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("EventRepository:Delete:Begin", "error", err)
		return err
	}
	defer tx.Rollback()

	for _, query := range []string{
		`DELETE FROM event_availabilities WHERE event_id = $1`,
		`DELETE FROM event_users WHERE event_id = $1`,
		`DELETE FROM events WHERE id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			logger.Error("EventRepository:Delete", "error", err)
			return err
		}
	}

	return tx.Commit()
}

func (r *EventRepository) CountCreatedBy(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM events WHERE created_by = $1`
	err := r.DB.GetContext(ctx, &count, query, userID)
	if err != nil {
		logger.Error("EventRepository:CountCreatedBy", "error", err)
		return 0, err
	}
	return count, nil
}

// ===================== Participants (event_users) =====================

func (r *EventRepository) GetParticipants(ctx context.Context, eventID uuid.UUID) ([]entity.Participant, error) {
	query := `
		SELECT eu.user_id, u.name, u.email, u.avatar_key, eu.created_at
		FROM event_users eu
		JOIN users u ON u.id = eu.user_id
		WHERE eu.event_id = $1
		ORDER BY eu.created_at
	`

	var participants []entity.Participant
	err := r.DB.SelectContext(ctx, &participants, query, eventID)
	if err != nil {
		logger.Error("EventRepository:GetParticipants", "error", err)
		return nil, err
	}

	return participants, nil
}

func (r *EventRepository) IsParticipant(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM event_users WHERE event_id = $1 AND user_id = $2)`
	err := r.DB.GetContext(ctx, &exists, query, eventID, userID)
	if err != nil {
		logger.Error("EventRepository:IsParticipant", "error", err)
		return false, err
	}
	return exists, nil
}

func (r *EventRepository) AddParticipant(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) error {
	query := `
		INSERT INTO event_users (event_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`

	err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		logger.Error("EventRepository:AddParticipant", "error", err)
		return err
	}

	return nil
}

func (r *EventRepository) RemoveParticipant(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) error {
	query := `DELETE FROM event_users WHERE event_id = $1 AND user_id = $2`
	err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		logger.Error("EventRepository:RemoveParticipant", "error", err)
		return err
	}
	return nil
}

// SyncParticipants replaces the participant set of an event.
func (r *EventRepository) SyncParticipants(ctx context.Context, eventID uuid.UUID, userIDs []uuid.UUID) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("EventRepository:SyncParticipants:Begin", "error", err)
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM event_users WHERE event_id = $1`, eventID); err != nil {
		logger.Error("EventRepository:SyncParticipants:Clear", "error", err)
		return err
	}

	insert := `
		INSERT INTO event_users (event_id, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`
	now := time.Now()
	for _, userID := range userIDs {
		if _, err := tx.ExecContext(ctx, insert, eventID, userID, now); err != nil {
			logger.Error("EventRepository:SyncParticipants:Insert", "error", err)
			return err
		}
	}

	return tx.Commit()
}
