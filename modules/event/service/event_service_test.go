package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"bandos-api/core/constants"
	"bandos-api/core/errors"
	bandEntity "bandos-api/modules/band/entity"
	"bandos-api/modules/event/dto"
	"bandos-api/modules/event/entity"

	"github.com/google/uuid"
)

type fakeEventRepo struct {
	createFn       func(ctx context.Context, event *entity.Event) error
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*entity.EventDetail, error)
	listByMemberFn func(ctx context.Context, userID uuid.UUID) ([]entity.EventDetail, error)
	deleteFn       func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeEventRepo) Create(ctx context.Context, event *entity.Event) error {
	return f.createFn(ctx, event)
}
func (f *fakeEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.EventDetail, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeEventRepo) ListByMember(ctx context.Context, userID uuid.UUID) ([]entity.EventDetail, error) {
	return f.listByMemberFn(ctx, userID)
}
func (f *fakeEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return f.deleteFn(ctx, id)
}

type fakeBandRepo struct {
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*bandEntity.Band, error)
	isMemberFn     func(ctx context.Context, bandID, userID uuid.UUID) (bool, error)
	listByMemberFn func(ctx context.Context, userID uuid.UUID) ([]bandEntity.Band, error)
}

func (f *fakeBandRepo) CreateWithLeader(ctx context.Context, band *bandEntity.Band) error {
	return nil
}
func (f *fakeBandRepo) GetByID(ctx context.Context, id uuid.UUID) (*bandEntity.Band, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeBandRepo) ListByMember(ctx context.Context, userID uuid.UUID) ([]bandEntity.Band, error) {
	return f.listByMemberFn(ctx, userID)
}
func (f *fakeBandRepo) IsMember(ctx context.Context, bandID, userID uuid.UUID) (bool, error) {
	return f.isMemberFn(ctx, bandID, userID)
}
func (f *fakeBandRepo) GetMembers(ctx context.Context, bandID uuid.UUID) ([]bandEntity.MemberDetail, error) {
	return nil, nil
}
func (f *fakeBandRepo) RemoveMember(ctx context.Context, bandID, userID uuid.UUID) error {
	return nil
}
func (f *fakeBandRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func bandWithLeader(id, leaderID uuid.UUID) *bandEntity.Band {
	b := &bandEntity.Band{Name: "Brass Section", LeaderID: leaderID}
	b.ID = id
	return b
}

func TestCreateEventRequiresAllFields(t *testing.T) {
	svc := NewEventService(&fakeEventRepo{}, &fakeBandRepo{}, nil)

	cases := []dto.CreateEventRequest{
		{Title: "", EventDate: time.Now(), Location: "Hall"},
		{Title: "Gig", Location: "Hall"},
		{Title: "Gig", EventDate: time.Now(), Location: "  "},
	}
	for _, req := range cases {
		_, appErr := svc.CreateEvent(context.Background(), uuid.New(), &req, uuid.New())
		if appErr == nil || appErr.Code != errors.ErrInvalidInput {
			t.Errorf("request %+v: expected ErrInvalidInput, got %v", req, appErr)
		}
	}
}

func TestCreateEventNonMemberForbidden(t *testing.T) {
	bandID := uuid.New()
	bandRepo := &fakeBandRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*bandEntity.Band, error) {
			return bandWithLeader(bandID, uuid.New()), nil
		},
		isMemberFn: func(ctx context.Context, bandID, userID uuid.UUID) (bool, error) {
			return false, nil
		},
	}
	svc := NewEventService(&fakeEventRepo{}, bandRepo, nil)

	req := &dto.CreateEventRequest{Title: "Gig", EventDate: time.Now().Add(time.Hour), Location: "Hall"}
	_, appErr := svc.CreateEvent(context.Background(), bandID, req, uuid.New())
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", appErr)
	}
}

func TestCreateEventMemberSucceeds(t *testing.T) {
	bandID := uuid.New()
	member := uuid.New()
	bandRepo := &fakeBandRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*bandEntity.Band, error) {
			return bandWithLeader(bandID, uuid.New()), nil
		},
		isMemberFn: func(ctx context.Context, bandID, userID uuid.UUID) (bool, error) {
			return true, nil
		},
	}
	var saved *entity.Event
	repo := &fakeEventRepo{
		createFn: func(ctx context.Context, event *entity.Event) error {
			event.ID = uuid.New()
			saved = event
			return nil
		},
	}
	svc := NewEventService(repo, bandRepo, nil)

	req := &dto.CreateEventRequest{Title: " Gig ", EventDate: time.Now().Add(time.Hour), Location: " Hall "}
	resp, appErr := svc.CreateEvent(context.Background(), bandID, req, member)
	if appErr != nil {
		t.Fatalf("CreateEvent returned error: %v", appErr)
	}
	if saved.Title != "Gig" || saved.Location != "Hall" {
		t.Errorf("fields not trimmed: %+v", saved)
	}
	if saved.CreatedBy != member {
		t.Errorf("created_by = %s, want %s", saved.CreatedBy, member)
	}
	if !resp.CanDelete {
		t.Error("creator must be able to delete their own event")
	}
}

func TestListMyEventsSplitsUpcomingAndPast(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	bandID := uuid.New()

	details := []entity.EventDetail{
		{Event: entity.Event{ID: uuid.New(), BandID: bandID, Title: "Old gig", EventDate: now.Add(-48 * time.Hour)}, BandName: "Brass Section"},
		{Event: entity.Event{ID: uuid.New(), BandID: bandID, Title: "Rehearsal", EventDate: now.Add(2 * time.Hour)}, BandName: "Brass Section"},
		{Event: entity.Event{ID: uuid.New(), BandID: bandID, Title: "Festival", EventDate: now.Add(72 * time.Hour)}, BandName: "Brass Section"},
	}
	repo := &fakeEventRepo{
		listByMemberFn: func(ctx context.Context, id uuid.UUID) ([]entity.EventDetail, error) {
			return details, nil
		},
	}
	bandRepo := &fakeBandRepo{
		listByMemberFn: func(ctx context.Context, id uuid.UUID) ([]bandEntity.Band, error) {
			return []bandEntity.Band{*bandWithLeader(bandID, uuid.New())}, nil
		},
	}
	svc := NewEventService(repo, bandRepo, nil)
	svc.now = func() time.Time { return now }

	resp, appErr := svc.ListMyEvents(context.Background(), userID)
	if appErr != nil {
		t.Fatalf("ListMyEvents returned error: %v", appErr)
	}
	if len(resp.Upcoming) != 2 {
		t.Errorf("upcoming = %d events, want 2", len(resp.Upcoming))
	}
	if len(resp.Past) != 1 || resp.Past[0].Title != "Old gig" {
		t.Errorf("past = %+v, want only the old gig", resp.Past)
	}
	if resp.Upcoming[0].Title != "Rehearsal" {
		t.Errorf("upcoming[0] = %q, want soonest first", resp.Upcoming[0].Title)
	}
}

func TestListMyEventsOrphanedBandGetsPlaceholder(t *testing.T) {
	userID := uuid.New()
	repo := &fakeEventRepo{
		listByMemberFn: func(ctx context.Context, id uuid.UUID) ([]entity.EventDetail, error) {
			return []entity.EventDetail{
				{Event: entity.Event{ID: uuid.New(), BandID: uuid.New(), Title: "Gig", EventDate: time.Now().Add(time.Hour), CreatedBy: userID}, BandName: constants.UnknownBandLabel},
			}, nil
		},
	}
	bandRepo := &fakeBandRepo{
		listByMemberFn: func(ctx context.Context, id uuid.UUID) ([]bandEntity.Band, error) {
			return nil, nil
		},
	}
	svc := NewEventService(repo, bandRepo, nil)

	resp, appErr := svc.ListMyEvents(context.Background(), userID)
	if appErr != nil {
		t.Fatalf("ListMyEvents returned error: %v", appErr)
	}
	if len(resp.Upcoming) != 1 || resp.Upcoming[0].BandName != constants.UnknownBandLabel {
		t.Errorf("orphaned event band name = %+v, want placeholder", resp.Upcoming)
	}
}

func TestDeleteEventCreatorAndLeaderAllowed(t *testing.T) {
	bandID := uuid.New()
	leader := uuid.New()
	creator := uuid.New()
	other := uuid.New()
	eventID := uuid.New()

	newSvc := func(deleted *bool) *EventService {
		repo := &fakeEventRepo{
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.EventDetail, error) {
				return &entity.EventDetail{
					Event:    entity.Event{ID: eventID, BandID: bandID, Title: "Gig", EventDate: time.Now(), CreatedBy: creator},
					BandName: "Brass Section",
				}, nil
			},
			deleteFn: func(ctx context.Context, id uuid.UUID) error {
				*deleted = true
				return nil
			},
		}
		bandRepo := &fakeBandRepo{
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*bandEntity.Band, error) {
				return bandWithLeader(bandID, leader), nil
			},
			isMemberFn: func(ctx context.Context, bandID, userID uuid.UUID) (bool, error) {
				return true, nil
			},
		}
		return NewEventService(repo, bandRepo, nil)
	}

	for _, allowed := range []uuid.UUID{creator, leader} {
		deleted := false
		if appErr := newSvc(&deleted).DeleteEvent(context.Background(), eventID, allowed); appErr != nil {
			t.Errorf("requester %s: DeleteEvent returned error: %v", allowed, appErr)
		}
		if !deleted {
			t.Errorf("requester %s: event was not deleted", allowed)
		}
	}

	deleted := false
	appErr := newSvc(&deleted).DeleteEvent(context.Background(), eventID, other)
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("plain member: expected ErrForbidden, got %v", appErr)
	}
	if deleted {
		t.Error("plain member deleted the event")
	}
}

func TestDeleteOrphanedEventOnlyCreator(t *testing.T) {
	creator := uuid.New()
	eventID := uuid.New()

	newSvc := func(deleted *bool) *EventService {
		repo := &fakeEventRepo{
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.EventDetail, error) {
				return &entity.EventDetail{
					Event:    entity.Event{ID: eventID, BandID: uuid.New(), Title: "Gig", EventDate: time.Now(), CreatedBy: creator},
					BandName: constants.UnknownBandLabel,
				}, nil
			},
			deleteFn: func(ctx context.Context, id uuid.UUID) error {
				*deleted = true
				return nil
			},
		}
		bandRepo := &fakeBandRepo{
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*bandEntity.Band, error) {
				return nil, nil
			},
		}
		return NewEventService(repo, bandRepo, nil)
	}

	deleted := false
	if appErr := newSvc(&deleted).DeleteEvent(context.Background(), eventID, creator); appErr != nil {
		t.Fatalf("creator: DeleteEvent returned error: %v", appErr)
	}
	if !deleted {
		t.Error("creator could not delete the orphaned event")
	}

	deleted = false
	appErr := newSvc(&deleted).DeleteEvent(context.Background(), eventID, uuid.New())
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("stranger: expected ErrNotFound, got %v", appErr)
	}
}

func TestDeleteEventMissingEventNotFound(t *testing.T) {
	repo := &fakeEventRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.EventDetail, error) {
			return nil, nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			return sql.ErrNoRows
		},
	}
	svc := NewEventService(repo, &fakeBandRepo{}, nil)

	appErr := svc.DeleteEvent(context.Background(), uuid.New(), uuid.New())
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", appErr)
	}
}
