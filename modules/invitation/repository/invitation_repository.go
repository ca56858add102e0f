package repository

import (
	"context"
	"database/sql"

	"gatherly-api/core/database"
	"gatherly-api/core/logger"
	"gatherly-api/modules/invitation/entity"

	"github.com/google/uuid"
)

// InvitationRepository handles invitation database operations
type InvitationRepository struct {
	DB database.Database
}

// NewInvitationRepository creates a new repository instance
func NewInvitationRepository(db database.Database) *InvitationRepository {
	return &InvitationRepository{DB: db}
}

// InvitationRepositoryInterface defines the repository contract
type InvitationRepositoryInterface interface {
	Create(ctx context.Context, invitation *entity.Invitation) (*entity.Invitation, error)
	GetByToken(ctx context.Context, token string) (*entity.Invitation, error)
	MarkAccepted(ctx context.Context, id uuid.UUID) error
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.Invitation, error)
}

func (r *InvitationRepository) Create(ctx context.Context, invitation *entity.Invitation) (*entity.Invitation, error) {
	query := `
		INSERT INTO invitations (event_id, inviter_id, email, token, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, event_id, inviter_id, email, token, status, created_at, updated_at
	`

	var created entity.Invitation
	err := r.DB.GetContext(ctx, &created, query,
		invitation.EventID, invitation.InviterID, invitation.Email, invitation.Token, invitation.Status)
	if err != nil {
		logger.Error("InvitationRepository:Create", "error", err)
		return nil, err
	}

	return &created, nil
}

func (r *InvitationRepository) GetByToken(ctx context.Context, token string) (*entity.Invitation, error) {
	query := `
		SELECT id, event_id, inviter_id, email, token, status, created_at, updated_at
		FROM invitations WHERE token = $1
	`

	var invitation entity.Invitation
	err := r.DB.GetContext(ctx, &invitation, query, token)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("InvitationRepository:GetByToken", "error", err)
		return nil, err
	}

	return &invitation, nil
}

func (r *InvitationRepository) MarkAccepted(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE invitations SET status = $2, updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id, entity.StatusAccepted)
	if err != nil {
		logger.Error("InvitationRepository:MarkAccepted", "error", err)
		return err
	}
	return nil
}

func (r *InvitationRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]entity.Invitation, error) {
	query := `
		SELECT id, event_id, inviter_id, email, token, status, created_at, updated_at
		FROM invitations
		WHERE event_id = $1
		ORDER BY created_at DESC
	`

	var invitations []entity.Invitation
	err := r.DB.SelectContext(ctx, &invitations, query, eventID)
	if err != nil {
		logger.Error("InvitationRepository:ListByEvent", "error", err)
		return nil, err
	}

	return invitations, nil
}
