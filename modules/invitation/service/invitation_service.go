package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"bandos-api/core/constants"
	"bandos-api/core/errors"
	"bandos-api/core/logger"
	"bandos-api/core/queue"
	"bandos-api/core/utils"
	authRepository "bandos-api/modules/auth/repository"
	bandRepository "bandos-api/modules/band/repository"
	"bandos-api/modules/invitation/dto"
	"bandos-api/modules/invitation/entity"
	"bandos-api/modules/invitation/repository"
	notificationDto "bandos-api/modules/notification/dto"
	notificationEntity "bandos-api/modules/notification/entity"
	"bandos-api/modules/realtime"

	"github.com/google/uuid"
)

const invitationTokenLength = 32

// NotificationCreator is the slice of the notification service the
// invitation flow needs.
type NotificationCreator interface {
	Create(ctx context.Context, req *notificationDto.CreateNotificationRequest) error
}

type InvitationService struct {
	repo          repository.InvitationRepositoryInterface
	bandRepo      bandRepository.BandRepositoryInterface
	authRepo      authRepository.AuthRepositoryInterface
	notifications NotificationCreator
	queue         queue.Client
	hub           realtime.Broadcaster
}

func NewInvitationService(
	repo repository.InvitationRepositoryInterface,
	bandRepo bandRepository.BandRepositoryInterface,
	authRepo authRepository.AuthRepositoryInterface,
	notifications NotificationCreator,
	queueClient queue.Client,
	hub realtime.Broadcaster,
) *InvitationService {
	return &InvitationService{
		repo:          repo,
		bandRepo:      bandRepo,
		authRepo:      authRepo,
		notifications: notifications,
		queue:         queueClient,
		hub:           hub,
	}
}

// InviteMember creates a pending invitation addressed to an email. Only the
// band leader may invite. Delivery (email, in-app notification, realtime
// signal) is best-effort: the invitation stands even if every channel fails.
func (s *InvitationService) InviteMember(ctx context.Context, bandID uuid.UUID, req *dto.InviteMemberRequest, requesterID uuid.UUID, requesterName string) (*entity.Invitation, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !utils.IsValidEmail(email) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "a valid email is required", nil)
	}

	band, err := s.bandRepo.GetByID(ctx, bandID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get band failed", err)
	}
	if band == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "band not found", nil)
	}
	if band.LeaderID != requesterID {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the band leader can invite members", nil)
	}

	invitee, err := s.authRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get user failed", err)
	}
	if invitee != nil {
		member, err := s.bandRepo.IsMember(ctx, bandID, invitee.ID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "check membership failed", err)
		}
		if member {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "user is already a member of this band", nil)
		}
	}

	pending, err := s.repo.HasPendingForBandEmail(ctx, bandID, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "check pending invitation failed", err)
	}
	if pending {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "an invitation for this email is already pending", nil)
	}

	invitation := &entity.Invitation{
		BandID:       bandID,
		InvitedEmail: email,
		InvitedBy:    requesterID,
		Status:       entity.InvitationStatusPending,
		Token:        utils.GenerateRandomString(invitationTokenLength),
	}
	if err := s.repo.Create(ctx, invitation); err != nil {
		logger.Error("InvitationService:InviteMember:Create:Error:", err)
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create invitation failed", err)
	}

	logger.Info("InvitationService:InviteMember:Created", "invitation_id", invitation.ID, "band_id", bandID)

	s.deliverInvitation(ctx, invitation, band.Name, requesterName, invitee != nil)
	if s.hub != nil {
		s.hub.BroadcastBandUpdate(bandID, realtime.UpdateInvitationCreated, requesterID.String())
	}

	return invitation, nil
}

// deliverInvitation fans the new invitation out to the delivery channels.
// Failures are logged and swallowed.
func (s *InvitationService) deliverInvitation(ctx context.Context, invitation *entity.Invitation, bandName string, inviterName string, inviteeExists bool) {
	if s.queue != nil {
		payload := queue.InvitationEmailPayload{
			To:          invitation.InvitedEmail,
			BandName:    bandName,
			InviterName: inviterName,
			Token:       invitation.Token,
		}
		if err := s.queue.EnqueueInvitationEmail(ctx, payload); err != nil {
			logger.Error("InvitationService:deliverInvitation:Enqueue:Error:", err)
		}
	}

	if !inviteeExists || s.notifications == nil {
		return
	}
	invitee, err := s.authRepo.GetUserByEmail(ctx, invitation.InvitedEmail)
	if err != nil || invitee == nil {
		return
	}
	notifErr := s.notifications.Create(ctx, &notificationDto.CreateNotificationRequest{
		UserID:  invitee.ID,
		Title:   "Band invitation",
		Message: inviterName + " invited you to join " + bandName,
		Type:    notificationEntity.TypeInvitation,
		Data: map[string]interface{}{
			"invitation_id": invitation.ID.String(),
			"band_id":       invitation.BandID.String(),
		},
	})
	if notifErr != nil {
		logger.Error("InvitationService:deliverInvitation:Notify:Error:", notifErr)
	}
}

// ListMyInvitations lists the pending invitations addressed to the
// requester's email.
func (s *InvitationService) ListMyInvitations(ctx context.Context, email string) (*dto.PendingInvitationsResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	details, err := s.repo.ListPendingByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "list invitations failed", err)
	}

	invitations := make([]dto.InvitationResponse, 0, len(details))
	for _, d := range details {
		invitations = append(invitations, dto.InvitationResponse{
			ID:          d.ID,
			BandID:      d.BandID,
			BandName:    d.BandName,
			InviterName: d.InviterName,
			CreatedAt:   d.CreatedAt,
		})
	}

	return &dto.PendingInvitationsResponse{
		Invitations: invitations,
		Total:       len(invitations),
	}, nil
}

// CountPending counts the pending invitations addressed to the requester's
// email, for the badge in the client.
func (s *InvitationService) CountPending(ctx context.Context, email string) (int, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	count, err := s.repo.CountPendingByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return 0, errors.NewAppError(errors.ErrGetFailed, "count invitations failed", err)
	}
	return count, nil
}

// Accept joins the requester to the band and consumes the invitation in one
// transaction. Only the addressee may accept.
func (s *InvitationService) Accept(ctx context.Context, invitationID uuid.UUID, userID uuid.UUID, email string) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	invitation, err := s.repo.GetByID(ctx, invitationID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get invitation failed", err)
	}
	if invitation == nil {
		return errors.NewAppError(errors.ErrNotFound, "invitation not found", nil)
	}
	if !strings.EqualFold(invitation.InvitedEmail, email) {
		return errors.NewAppError(errors.ErrForbidden, "this invitation is addressed to someone else", nil)
	}

	band, err := s.bandRepo.GetByID(ctx, invitation.BandID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get band failed", err)
	}
	if band == nil {
		// The band was deleted after the invitation went out. Consume the
		// orphaned invitation so it stops showing up.
		if err := s.repo.Delete(ctx, invitationID); err != nil && !stderrors.Is(err, sql.ErrNoRows) {
			logger.Error("InvitationService:Accept:DeleteOrphan:Error:", err)
		}
		return errors.NewAppError(errors.ErrNotFound, "the band no longer exists", nil)
	}

	if err := s.repo.Accept(ctx, invitationID, invitation.BandID, userID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewAppError(errors.ErrNotFound, "invitation not found", nil)
		}
		logger.Error("InvitationService:Accept:Error:", err)
		return errors.NewAppError(errors.ErrUpdateFailed, "accept invitation failed", err)
	}

	logger.Info("InvitationService:Accept:Joined", "invitation_id", invitationID, "band_id", invitation.BandID, "user_id", userID)
	if s.hub != nil {
		s.hub.BroadcastBandUpdate(invitation.BandID, realtime.UpdateMemberJoined, userID.String())
	}
	return nil
}

// Reject deletes the invitation without touching the band. Only the
// addressee may reject.
func (s *InvitationService) Reject(ctx context.Context, invitationID uuid.UUID, email string) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	invitation, err := s.repo.GetByID(ctx, invitationID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get invitation failed", err)
	}
	if invitation == nil {
		return errors.NewAppError(errors.ErrNotFound, "invitation not found", nil)
	}
	if !strings.EqualFold(invitation.InvitedEmail, email) {
		return errors.NewAppError(errors.ErrForbidden, "this invitation is addressed to someone else", nil)
	}

	if err := s.repo.Delete(ctx, invitationID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewAppError(errors.ErrNotFound, "invitation not found", nil)
		}
		return errors.NewAppError(errors.ErrDeleteFailed, "reject invitation failed", err)
	}

	logger.Info("InvitationService:Reject:Deleted", "invitation_id", invitationID)
	return nil
}
