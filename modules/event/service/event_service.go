package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"bandos-api/core/constants"
	"bandos-api/core/errors"
	"bandos-api/core/logger"
	bandRepository "bandos-api/modules/band/repository"
	"bandos-api/modules/event/dto"
	"bandos-api/modules/event/entity"
	"bandos-api/modules/event/repository"
	"bandos-api/modules/realtime"

	"github.com/google/uuid"
)

type EventService struct {
	repo     repository.EventRepositoryInterface
	bandRepo bandRepository.BandRepositoryInterface
	hub      realtime.Broadcaster
	now      func() time.Time
}

func NewEventService(repo repository.EventRepositoryInterface, bandRepo bandRepository.BandRepositoryInterface, hub realtime.Broadcaster) *EventService {
	return &EventService{
		repo:     repo,
		bandRepo: bandRepo,
		hub:      hub,
		now:      time.Now,
	}
}

// CreateEvent adds an event to a band's calendar. Any member may create.
func (s *EventService) CreateEvent(ctx context.Context, bandID uuid.UUID, req *dto.CreateEventRequest, requesterID uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	title := strings.TrimSpace(req.Title)
	location := strings.TrimSpace(req.Location)
	if title == "" || location == "" || req.EventDate.IsZero() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "title, event date and location are all required", nil)
	}

	band, err := s.bandRepo.GetByID(ctx, bandID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get band failed", err)
	}
	if band == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "band not found", nil)
	}

	member, err := s.bandRepo.IsMember(ctx, bandID, requesterID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "check membership failed", err)
	}
	if !member {
		return nil, errors.NewAppError(errors.ErrForbidden, "only band members can create events", nil)
	}

	event := &entity.Event{
		BandID:    bandID,
		Title:     title,
		EventDate: req.EventDate,
		Location:  location,
		CreatedBy: requesterID,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		logger.Error("EventService:CreateEvent:Create:Error:", err)
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create event failed", err)
	}

	logger.Info("EventService:CreateEvent:Created", "event_id", event.ID, "band_id", bandID)
	if s.hub != nil {
		s.hub.BroadcastBandUpdate(bandID, realtime.UpdateEventCreated, requesterID.String())
	}

	resp := s.toResponse(&entity.EventDetail{Event: *event, BandName: band.Name}, requesterID, band.LeaderID == requesterID)
	return &resp, nil
}

// ListMyEvents lists the events of every band the requester belongs to,
// split into upcoming and past around the current time.
func (s *EventService) ListMyEvents(ctx context.Context, requesterID uuid.UUID) (*dto.EventListResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	details, err := s.repo.ListByMember(ctx, requesterID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "list events failed", err)
	}

	leaderOf := map[uuid.UUID]bool{}
	bands, err := s.bandRepo.ListByMember(ctx, requesterID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "list bands failed", err)
	}
	for _, b := range bands {
		if b.LeaderID == requesterID {
			leaderOf[b.ID] = true
		}
	}

	now := s.now()
	resp := &dto.EventListResponse{
		Upcoming: []dto.EventResponse{},
		Past:     []dto.EventResponse{},
	}
	for i := range details {
		d := &details[i]
		item := s.toResponse(d, requesterID, leaderOf[d.BandID])
		if d.EventDate.Before(now) {
			resp.Past = append(resp.Past, item)
		} else {
			resp.Upcoming = append(resp.Upcoming, item)
		}
	}

	// Past events read best newest-first.
	for i, j := 0, len(resp.Past)-1; i < j; i, j = i+1, j-1 {
		resp.Past[i], resp.Past[j] = resp.Past[j], resp.Past[i]
	}

	return resp, nil
}

// GetEvent returns one event. Only members of its band may read it; the
// creator keeps access when the band has been deleted.
func (s *EventService) GetEvent(ctx context.Context, eventID uuid.UUID, requesterID uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	detail, appErr := s.loadVisible(ctx, eventID, requesterID)
	if appErr != nil {
		return nil, appErr
	}

	canDelete, appErr := s.canDelete(ctx, detail, requesterID)
	if appErr != nil {
		return nil, appErr
	}

	resp := s.toResponse(detail, requesterID, false)
	resp.CanDelete = canDelete
	return &resp, nil
}

// DeleteEvent removes an event. Allowed for its creator and for the leader
// of its band; the creator may also delete orphaned events whose band is
// gone.
func (s *EventService) DeleteEvent(ctx context.Context, eventID uuid.UUID, requesterID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	detail, appErr := s.loadVisible(ctx, eventID, requesterID)
	if appErr != nil {
		return appErr
	}

	canDelete, appErr := s.canDelete(ctx, detail, requesterID)
	if appErr != nil {
		return appErr
	}
	if !canDelete {
		return errors.NewAppError(errors.ErrForbidden, "only the event creator or the band leader can delete events", nil)
	}

	if err := s.repo.Delete(ctx, eventID); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NewAppError(errors.ErrNotFound, "event not found", nil)
		}
		return errors.NewAppError(errors.ErrDeleteFailed, "delete event failed", err)
	}

	logger.Info("EventService:DeleteEvent:Deleted", "event_id", eventID, "band_id", detail.BandID)
	if s.hub != nil {
		s.hub.BroadcastBandUpdate(detail.BandID, realtime.UpdateEventDeleted, requesterID.String())
	}
	return nil
}

// loadVisible fetches the event and checks the requester may see it.
func (s *EventService) loadVisible(ctx context.Context, eventID uuid.UUID, requesterID uuid.UUID) (*entity.EventDetail, *errors.AppError) {
	detail, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get event failed", err)
	}
	if detail == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
	}

	band, err := s.bandRepo.GetByID(ctx, detail.BandID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get band failed", err)
	}
	if band == nil {
		// Orphaned event: only its creator can still see it.
		if detail.CreatedBy != requesterID {
			return nil, errors.NewAppError(errors.ErrNotFound, "event not found", nil)
		}
		return detail, nil
	}

	member, err := s.bandRepo.IsMember(ctx, detail.BandID, requesterID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "check membership failed", err)
	}
	if !member {
		return nil, errors.NewAppError(errors.ErrForbidden, "only band members can view this event", nil)
	}
	return detail, nil
}

// canDelete reports whether the requester is the event's creator or the
// leader of its band.
func (s *EventService) canDelete(ctx context.Context, detail *entity.EventDetail, requesterID uuid.UUID) (bool, *errors.AppError) {
	if detail.CreatedBy == requesterID {
		return true, nil
	}
	band, err := s.bandRepo.GetByID(ctx, detail.BandID)
	if err != nil {
		return false, errors.NewAppError(errors.ErrGetFailed, "get band failed", err)
	}
	return band != nil && band.LeaderID == requesterID, nil
}

func (s *EventService) toResponse(detail *entity.EventDetail, requesterID uuid.UUID, isLeader bool) dto.EventResponse {
	return dto.EventResponse{
		ID:        detail.ID,
		BandID:    detail.BandID,
		BandName:  detail.BandName,
		Title:     detail.Title,
		EventDate: detail.EventDate,
		Location:  detail.Location,
		CreatedBy: detail.CreatedBy,
		CanDelete: detail.CreatedBy == requesterID || isLeader,
		CreatedAt: detail.CreatedAt,
	}
}
