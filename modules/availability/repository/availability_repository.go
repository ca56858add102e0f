package repository

import (
	"context"
	"time"

	"gatherly-api/core/database"
	"gatherly-api/core/logger"
	"gatherly-api/modules/availability/entity"

	"github.com/google/uuid"
)

// AvailabilityRepository handles availability database operations
type AvailabilityRepository struct {
	DB database.Database
}

// NewAvailabilityRepository creates a new repository instance
func NewAvailabilityRepository(db database.Database) *AvailabilityRepository {
	return &AvailabilityRepository{DB: db}
}

// AvailabilityRepositoryInterface defines the repository contract.
//
// Note the asymmetry inherited from the product: Upsert keys on the exact
// (event, user, available_at) timestamp while UpdateLocationByDate and
// DeleteByDate match every slot on a calendar date.
type AvailabilityRepositoryInterface interface {
	Upsert(ctx context.Context, slot *entity.AvailabilitySlot) (*entity.AvailabilitySlot, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.AvailabilitySlot, error)
	ListByEventFrom(ctx context.Context, eventID uuid.UUID, from time.Time) ([]entity.AvailabilitySlot, error)
	ListUserSlots(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) ([]entity.AvailabilitySlot, error)
	UpdateLocationByDate(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, date string, location *string) error
	DeleteByDate(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, date string) error
	ListUpcomingByUser(ctx context.Context, userID uuid.UUID, from time.Time) ([]entity.UpcomingAvailability, error)
}

// Upsert creates the slot or updates its all-day flag and location when the
// (event, user, available_at) row already exists.
func (r *AvailabilityRepository) Upsert(ctx context.Context, slot *entity.AvailabilitySlot) (*entity.AvailabilitySlot, error) {
	query := `
		INSERT INTO event_availabilities (event_id, user_id, available_at, is_all_day, location)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id, user_id, available_at)
		DO UPDATE SET is_all_day = EXCLUDED.is_all_day, location = EXCLUDED.location, updated_at = NOW()
		RETURNING id, event_id, user_id, available_at, is_all_day, location, created_at, updated_at
	`

	var saved entity.AvailabilitySlot
	err := r.DB.GetContext(ctx, &saved, query,
		slot.EventID, slot.UserID, slot.AvailableAt, slot.IsAllDay, slot.Location)
	if err != nil {
		logger.Error("AvailabilityRepository:Upsert", "error", err)
		return nil, err
	}

	return &saved, nil
}

func (r *AvailabilityRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.AvailabilitySlot, error) {
	query := `
		SELECT id, event_id, user_id, available_at, is_all_day, location, created_at, updated_at
		FROM event_availabilities
		WHERE event_id = $1
		ORDER BY available_at
	`

	var slots []entity.AvailabilitySlot
	err := r.DB.SelectContext(ctx, &slots, query, eventID)
	if err != nil {
		logger.Error("AvailabilityRepository:ListByEvent", "error", err)
		return nil, err
	}

	return slots, nil
}

func (r *AvailabilityRepository) ListByEventFrom(ctx context.Context, eventID uuid.UUID, from time.Time) ([]entity.AvailabilitySlot, error) {
	query := `
		SELECT id, event_id, user_id, available_at, is_all_day, location, created_at, updated_at
		FROM event_availabilities
		WHERE event_id = $1 AND available_at >= $2
		ORDER BY available_at
	`

	var slots []entity.AvailabilitySlot
	err := r.DB.SelectContext(ctx, &slots, query, eventID, from)
	if err != nil {
		logger.Error("AvailabilityRepository:ListByEventFrom", "error", err)
		return nil, err
	}

	return slots, nil
}

func (r *AvailabilityRepository) ListUserSlots(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) ([]entity.AvailabilitySlot, error) {
	query := `
		SELECT id, event_id, user_id, available_at, is_all_day, location, created_at, updated_at
		FROM event_availabilities
		WHERE event_id = $1 AND user_id = $2
		ORDER BY available_at
	`

	var slots []entity.AvailabilitySlot
	err := r.DB.SelectContext(ctx, &slots, query, eventID, userID)
	if err != nil {
		logger.Error("AvailabilityRepository:ListUserSlots", "error", err)
		return nil, err
	}

	return slots, nil
}

// UpdateLocationByDate sets the location of every slot the user holds on the
// given calendar date.
func (r *AvailabilityRepository) UpdateLocationByDate(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, date string, location *string) error {
	query := `
		UPDATE event_availabilities
		SET location = $4, updated_at = NOW()
		WHERE event_id = $1 AND user_id = $2 AND available_at::date = $3
	`

	err := r.DB.ExecContext(ctx, query, eventID, userID, date, location)
	if err != nil {
		logger.Error("AvailabilityRepository:UpdateLocationByDate", "error", err)
		return err
	}

	return nil
}

// DeleteByDate removes every slot the user holds on the given calendar date,
// regardless of the exact time stored.
func (r *AvailabilityRepository) DeleteByDate(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, date string) error {
	query := `
		DELETE FROM event_availabilities
		WHERE event_id = $1 AND user_id = $2 AND available_at::date = $3
	`

	err := r.DB.ExecContext(ctx, query, eventID, userID, date)
	if err != nil {
		logger.Error("AvailabilityRepository:DeleteByDate", "error", err)
		return err
	}

	return nil
}

// ListUpcomingByUser returns the earliest future slot per event the user
// belongs to.
func (r *AvailabilityRepository) ListUpcomingByUser(ctx context.Context, userID uuid.UUID, from time.Time) ([]entity.UpcomingAvailability, error) {
	query := `
		SELECT DISTINCT ON (ea.event_id)
		       ea.event_id, e.name AS event_name, e.color AS event_color,
		       ea.available_at, ea.is_all_day, ea.location
		FROM event_availabilities ea
		JOIN events e ON e.id = ea.event_id
		JOIN event_users eu ON eu.event_id = ea.event_id AND eu.user_id = $1
		WHERE ea.available_at >= $2
		ORDER BY ea.event_id, ea.available_at
	`

	var upcoming []entity.UpcomingAvailability
	err := r.DB.SelectContext(ctx, &upcoming, query, userID, from)
	if err != nil {
		logger.Error("AvailabilityRepository:ListUpcomingByUser", "error", err)
		return nil, err
	}

	return upcoming, nil
}
