package service

import (
	"context"
	"database/sql"
	"strings"

	"bandos-api/core/constants"
	"bandos-api/core/errors"
	"bandos-api/core/logger"
	"bandos-api/modules/band/dto"
	"bandos-api/modules/band/entity"
	"bandos-api/modules/band/repository"
	"bandos-api/modules/realtime"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type BandService struct {
	repo repository.BandRepositoryInterface
	hub  realtime.Broadcaster
}

func NewBandService(repo repository.BandRepositoryInterface, hub realtime.Broadcaster) *BandService {
	return &BandService{
		repo: repo,
		hub:  hub,
	}
}

// CreateBand creates a band led by the requester. The requester becomes the
// sole member.
func (s *BandService) CreateBand(ctx context.Context, req *dto.CreateBandRequest, requesterID uuid.UUID) (*dto.BandResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "band name cannot be empty", nil)
	}

	band := &entity.Band{
		Name:     name,
		Slug:     slug.Make(name),
		LeaderID: requesterID,
	}

	if err := s.repo.CreateWithLeader(ctx, band); err != nil {
		logger.Error("BandService:CreateBand:CreateWithLeader:Error:", err)
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create band failed", err)
	}

	logger.Info("BandService:CreateBand:Created", "band_id", band.ID, "leader_id", requesterID)

	return &dto.BandResponse{
		ID:        band.ID,
		Name:      band.Name,
		Slug:      band.Slug,
		LeaderID:  band.LeaderID,
		Role:      "leader",
		CreatedAt: band.CreatedAt,
	}, nil
}

// ListMyBands returns the bands the requester belongs to.
func (s *BandService) ListMyBands(ctx context.Context, requesterID uuid.UUID) (*dto.BandListResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	bands, err := s.repo.ListByMember(ctx, requesterID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "list bands failed", err)
	}

	resp := &dto.BandListResponse{Bands: make([]dto.BandResponse, 0, len(bands))}
	for _, b := range bands {
		role := "member"
		if b.LeaderID == requesterID {
			role = "leader"
		}
		resp.Bands = append(resp.Bands, dto.BandResponse{
			ID:        b.ID,
			Name:      b.Name,
			Slug:      b.Slug,
			LeaderID:  b.LeaderID,
			Role:      role,
			CreatedAt: b.CreatedAt,
		})
	}
	resp.Total = len(resp.Bands)
	return resp, nil
}

// GetBand returns a band with its member list. Only members may look.
func (s *BandService) GetBand(ctx context.Context, bandID uuid.UUID, requesterID uuid.UUID) (*dto.BandDetailResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	band, err := s.repo.GetByID(ctx, bandID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get band failed", err)
	}
	if band == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "band not found", nil)
	}

	isMember, err := s.repo.IsMember(ctx, bandID, requesterID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get band failed", err)
	}
	if !isMember {
		return nil, errors.NewAppError(errors.ErrForbidden, "not a member of this band", nil)
	}

	members, err := s.repo.GetMembers(ctx, bandID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get band members failed", err)
	}

	role := "member"
	if band.LeaderID == requesterID {
		role = "leader"
	}

	resp := &dto.BandDetailResponse{
		ID:        band.ID,
		Name:      band.Name,
		Slug:      band.Slug,
		LeaderID:  band.LeaderID,
		Role:      role,
		Members:   make([]dto.MemberResponse, 0, len(members)),
		CreatedAt: band.CreatedAt,
	}
	for _, m := range members {
		resp.Members = append(resp.Members, dto.MemberResponse{
			UserID:      m.UserID,
			DisplayName: m.DisplayName,
			PhotoURL:    m.PhotoURL,
			IsLeader:    m.UserID == band.LeaderID,
			JoinedAt:    m.JoinedAt,
		})
	}
	return resp, nil
}

// RemoveMember removes a member from the band. Leader-only; the leader can
// never remove themself.
func (s *BandService) RemoveMember(ctx context.Context, bandID uuid.UUID, targetUserID uuid.UUID, requesterID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	band, err := s.repo.GetByID(ctx, bandID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get band failed", err)
	}
	if band == nil {
		return errors.NewAppError(errors.ErrNotFound, "band not found", nil)
	}

	if band.LeaderID != requesterID {
		return errors.NewAppError(errors.ErrForbidden, "only the band leader can remove members", nil)
	}
	if targetUserID == band.LeaderID {
		return errors.NewAppError(errors.ErrForbidden, "cannot remove yourself as leader", nil)
	}

	if err := s.repo.RemoveMember(ctx, bandID, targetUserID); err != nil {
		if err == sql.ErrNoRows {
			return errors.NewAppError(errors.ErrNotFound, "user is not a member of this band", nil)
		}
		return errors.NewAppError(errors.ErrDeleteFailed, "remove member failed", err)
	}

	logger.Info("BandService:RemoveMember:Removed", "band_id", bandID, "user_id", targetUserID)
	if s.hub != nil {
		s.hub.BroadcastBandUpdate(bandID, realtime.UpdateMemberRemoved, requesterID.String())
	}
	return nil
}

// DeleteBand deletes the band. Leader-only. Events and invitations that
// reference the band are not cascaded; readers resolve them with
// placeholder labels.
func (s *BandService) DeleteBand(ctx context.Context, bandID uuid.UUID, requesterID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	band, err := s.repo.GetByID(ctx, bandID)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get band failed", err)
	}
	if band == nil {
		return errors.NewAppError(errors.ErrNotFound, "band not found", nil)
	}

	if band.LeaderID != requesterID {
		return errors.NewAppError(errors.ErrForbidden, "only the band leader can delete the band", nil)
	}

	if err := s.repo.Delete(ctx, bandID); err != nil {
		if err == sql.ErrNoRows {
			return errors.NewAppError(errors.ErrNotFound, "band not found", nil)
		}
		return errors.NewAppError(errors.ErrDeleteFailed, "delete band failed", err)
	}

	logger.Info("BandService:DeleteBand:Deleted", "band_id", bandID, "leader_id", requesterID)
	if s.hub != nil {
		s.hub.BroadcastBandUpdate(bandID, realtime.UpdateBandDeleted, requesterID.String())
	}
	return nil
}
