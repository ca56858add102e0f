package service

import (
	"context"
	"strings"
	"time"

	"gatherly-api/core/constants"
	"gatherly-api/core/errors"
	"gatherly-api/core/logger"
	"gatherly-api/core/utils"
	evententity "gatherly-api/modules/event/entity"
	"gatherly-api/modules/invitation/dto"
	"gatherly-api/modules/invitation/entity"
	"gatherly-api/modules/invitation/repository"
	notifdto "gatherly-api/modules/notification/dto"

	"github.com/google/uuid"
)

// EventDirectory is the slice of the event repository the invitation
// service needs.
type EventDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*evententity.Event, error)
	GetParticipants(ctx context.Context, eventID uuid.UUID) ([]evententity.Participant, error)
	IsParticipant(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (bool, error)
	AddParticipant(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) error
}

// TokenStore keeps live invite tokens with a TTL.
type TokenStore interface {
	Save(ctx context.Context, token string, invitationID uuid.UUID, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
}

// InvitationPublisher announces new invitations.
type InvitationPublisher interface {
	PublishInvitationCreated(ctx context.Context, payload notifdto.InvitationCreatedPayload) error
}

// InvitationService handles invitation business logic
type InvitationService struct {
	repo      repository.InvitationRepositoryInterface
	events    EventDirectory
	tokens    TokenStore
	publisher InvitationPublisher
	now       func() time.Time
}

// InvitationServiceInterface defines the service contract
type InvitationServiceInterface interface {
	Invite(ctx context.Context, eventID uuid.UUID, inviterID uuid.UUID, req *dto.CreateInvitationRequest) (*dto.InvitationResponse, *errors.AppError)
	Accept(ctx context.Context, token string, userID uuid.UUID) (*dto.InvitationResponse, *errors.AppError)
}

// NewInvitationService creates a new invitation service
func NewInvitationService(
	repo repository.InvitationRepositoryInterface,
	events EventDirectory,
	tokens TokenStore,
	publisher InvitationPublisher,
) InvitationServiceInterface {
	return &InvitationService{
		repo:      repo,
		events:    events,
		tokens:    tokens,
		publisher: publisher,
		now:       time.Now,
	}
}

// Invite creates a pending invitation with a fresh single-use token.
// Only participants of the event may invite.
func (s *InvitationService) Invite(ctx context.Context, eventID uuid.UUID, inviterID uuid.UUID, req *dto.CreateInvitationRequest) (*dto.InvitationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if appErr := req.Validate(); appErr != nil {
		return nil, appErr
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	isMember, err := s.events.IsParticipant(ctx, eventID, inviterID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check membership", err)
	}
	if !isMember {
		return nil, errors.NewAppError(errors.ErrForbidden, "You are not a participant of this event", nil)
	}

	invitation := &entity.Invitation{
		EventID:   eventID,
		InviterID: inviterID,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Token:     utils.GenerateToken(32),
		Status:    entity.StatusPending,
	}

	created, err := s.repo.Create(ctx, invitation)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create invitation", err)
	}

	if err := s.tokens.Save(ctx, created.Token, created.ID, constants.InvitationTokenTTL); err != nil {
		logger.Warn("InvitationService:Invite:TokenSave", "error", err, "invitation_id", created.ID)
	}

	s.announceInvitation(ctx, event, created)

	return dto.ToInvitationResponse(created, true), nil
}

// Accept redeems an invite token and adds the acceptor to the event.
// Expired or unknown tokens are rejected; a token can only be used once.
func (s *InvitationService) Accept(ctx context.Context, token string, userID uuid.UUID) (*dto.InvitationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if token == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Missing invitation token", nil)
	}

	invitation, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to look up invitation", err)
	}
	if invitation == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Invitation not found", nil)
	}

	if invitation.Status != entity.StatusPending {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "This invitation has already been used", nil)
	}

	// The redis entry expires with the token; fall back to the row's age in
	// case the entry was lost.
	live, err := s.tokens.Exists(ctx, token)
	if err != nil {
		logger.Warn("InvitationService:Accept:TokenLookup", "error", err)
		live = s.now().Before(invitation.CreatedAt.Add(constants.InvitationTokenTTL))
	}
	if !live {
		return nil, errors.NewAppError(errors.ErrTokenExpired, "This invitation has expired", nil)
	}

	if err := s.events.AddParticipant(ctx, invitation.EventID, userID); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to join event", err)
	}

	if err := s.repo.MarkAccepted(ctx, invitation.ID); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to accept invitation", err)
	}

	if err := s.tokens.Delete(ctx, token); err != nil {
		logger.Warn("InvitationService:Accept:TokenDelete", "error", err)
	}

	invitation.Status = entity.StatusAccepted
	return dto.ToInvitationResponse(invitation, false), nil
}

func (s *InvitationService) announceInvitation(ctx context.Context, event *evententity.Event, invitation *entity.Invitation) {
	inviterName := ""
	if participants, err := s.events.GetParticipants(ctx, event.ID); err == nil {
		for _, p := range participants {
			if p.UserID == invitation.InviterID {
				inviterName = p.Name
				break
			}
		}
	}

	payload := notifdto.InvitationCreatedPayload{
		InvitationID: invitation.ID,
		EventID:      event.ID,
		EventName:    event.Name,
		InviterID:    invitation.InviterID,
		InviterName:  inviterName,
		Email:        invitation.Email,
	}

	if err := s.publisher.PublishInvitationCreated(ctx, payload); err != nil {
		logger.Warn("InvitationService:announceInvitation", "error", err, "invitation_id", invitation.ID)
	}
}
