package service

import (
	"context"
	"testing"

	"bandos-api/core/errors"
	"bandos-api/modules/band/dto"
	"bandos-api/modules/band/entity"

	"github.com/google/uuid"
)

type fakeBandRepo struct {
	createWithLeaderFn func(ctx context.Context, band *entity.Band) error
	getByIDFn          func(ctx context.Context, id uuid.UUID) (*entity.Band, error)
	listByMemberFn     func(ctx context.Context, userID uuid.UUID) ([]entity.Band, error)
	isMemberFn         func(ctx context.Context, bandID, userID uuid.UUID) (bool, error)
	getMembersFn       func(ctx context.Context, bandID uuid.UUID) ([]entity.MemberDetail, error)
	removeMemberFn     func(ctx context.Context, bandID, userID uuid.UUID) error
	deleteFn           func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeBandRepo) CreateWithLeader(ctx context.Context, band *entity.Band) error {
	return f.createWithLeaderFn(ctx, band)
}
func (f *fakeBandRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Band, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeBandRepo) ListByMember(ctx context.Context, userID uuid.UUID) ([]entity.Band, error) {
	return f.listByMemberFn(ctx, userID)
}
func (f *fakeBandRepo) IsMember(ctx context.Context, bandID, userID uuid.UUID) (bool, error) {
	return f.isMemberFn(ctx, bandID, userID)
}
func (f *fakeBandRepo) GetMembers(ctx context.Context, bandID uuid.UUID) ([]entity.MemberDetail, error) {
	return f.getMembersFn(ctx, bandID)
}
func (f *fakeBandRepo) RemoveMember(ctx context.Context, bandID, userID uuid.UUID) error {
	return f.removeMemberFn(ctx, bandID, userID)
}
func (f *fakeBandRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return f.deleteFn(ctx, id)
}

func TestCreateBandRequesterBecomesLeaderAndMember(t *testing.T) {
	requester := uuid.New()
	var saved *entity.Band
	repo := &fakeBandRepo{
		createWithLeaderFn: func(ctx context.Context, band *entity.Band) error {
			band.ID = uuid.New()
			saved = band
			return nil
		},
	}
	svc := NewBandService(repo, nil)

	resp, appErr := svc.CreateBand(context.Background(), &dto.CreateBandRequest{Name: "  The Sharps  "}, requester)
	if appErr != nil {
		t.Fatalf("CreateBand returned error: %v", appErr)
	}
	if saved == nil {
		t.Fatal("band was not persisted")
	}
	if saved.LeaderID != requester {
		t.Errorf("leader = %s, want requester %s", saved.LeaderID, requester)
	}
	if saved.Name != "The Sharps" {
		t.Errorf("name = %q, want trimmed %q", saved.Name, "The Sharps")
	}
	if saved.Slug != "the-sharps" {
		t.Errorf("slug = %q, want %q", saved.Slug, "the-sharps")
	}
	if resp.Role != "leader" {
		t.Errorf("role = %q, want leader", resp.Role)
	}
}

func TestCreateBandEmptyNameRejected(t *testing.T) {
	repo := &fakeBandRepo{
		createWithLeaderFn: func(ctx context.Context, band *entity.Band) error {
			t.Fatal("repository should not be called for an empty name")
			return nil
		},
	}
	svc := NewBandService(repo, nil)

	_, appErr := svc.CreateBand(context.Background(), &dto.CreateBandRequest{Name: "   "}, uuid.New())
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", appErr)
	}
}

func TestGetBandNonMemberForbidden(t *testing.T) {
	bandID := uuid.New()
	repo := &fakeBandRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Band, error) {
			b := &entity.Band{Name: "Quartet", LeaderID: uuid.New()}
			b.ID = bandID
			return b, nil
		},
		isMemberFn: func(ctx context.Context, bandID, userID uuid.UUID) (bool, error) {
			return false, nil
		},
	}
	svc := NewBandService(repo, nil)

	_, appErr := svc.GetBand(context.Background(), bandID, uuid.New())
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", appErr)
	}
}

func TestRemoveMemberOnlyLeaderMayRemove(t *testing.T) {
	leader := uuid.New()
	member := uuid.New()
	bandID := uuid.New()
	repo := &fakeBandRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Band, error) {
			b := &entity.Band{Name: "Quartet", LeaderID: leader}
			b.ID = bandID
			return b, nil
		},
		removeMemberFn: func(ctx context.Context, bandID, userID uuid.UUID) error {
			t.Fatal("non-leader must not reach the repository")
			return nil
		},
	}
	svc := NewBandService(repo, nil)

	appErr := svc.RemoveMember(context.Background(), bandID, member, member)
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", appErr)
	}
}

func TestRemoveMemberLeaderCannotRemoveSelf(t *testing.T) {
	leader := uuid.New()
	bandID := uuid.New()
	removed := false
	repo := &fakeBandRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Band, error) {
			b := &entity.Band{Name: "Quartet", LeaderID: leader}
			b.ID = bandID
			return b, nil
		},
		removeMemberFn: func(ctx context.Context, bandID, userID uuid.UUID) error {
			removed = true
			return nil
		},
	}
	svc := NewBandService(repo, nil)

	appErr := svc.RemoveMember(context.Background(), bandID, leader, leader)
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", appErr)
	}
	if removed {
		t.Error("member set was mutated by a rejected self-removal")
	}
}

func TestRemoveMemberLeaderRemovesMember(t *testing.T) {
	leader := uuid.New()
	member := uuid.New()
	bandID := uuid.New()
	var removedUser uuid.UUID
	repo := &fakeBandRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Band, error) {
			b := &entity.Band{Name: "Quartet", LeaderID: leader}
			b.ID = bandID
			return b, nil
		},
		removeMemberFn: func(ctx context.Context, bandID, userID uuid.UUID) error {
			removedUser = userID
			return nil
		},
	}
	svc := NewBandService(repo, nil)

	if appErr := svc.RemoveMember(context.Background(), bandID, member, leader); appErr != nil {
		t.Fatalf("RemoveMember returned error: %v", appErr)
	}
	if removedUser != member {
		t.Errorf("removed %s, want %s", removedUser, member)
	}
}

func TestDeleteBandNonLeaderForbidden(t *testing.T) {
	leader := uuid.New()
	bandID := uuid.New()
	repo := &fakeBandRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Band, error) {
			b := &entity.Band{Name: "Quartet", LeaderID: leader}
			b.ID = bandID
			return b, nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			t.Fatal("non-leader must not reach the repository")
			return nil
		},
	}
	svc := NewBandService(repo, nil)

	appErr := svc.DeleteBand(context.Background(), bandID, uuid.New())
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", appErr)
	}
}

func TestDeleteBandMissingBandNotFound(t *testing.T) {
	repo := &fakeBandRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Band, error) {
			return nil, nil
		},
	}
	svc := NewBandService(repo, nil)

	appErr := svc.DeleteBand(context.Background(), uuid.New(), uuid.New())
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", appErr)
	}
}
