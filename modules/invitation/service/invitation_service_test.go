package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"bandos-api/core/errors"
	"bandos-api/core/queue"
	authEntity "bandos-api/modules/auth/entity"
	bandEntity "bandos-api/modules/band/entity"
	"bandos-api/modules/invitation/dto"
	"bandos-api/modules/invitation/entity"
	notificationDto "bandos-api/modules/notification/dto"

	"github.com/google/uuid"
)

// memoryStore is an in-memory rendition of the invitation and membership
// tables, shared by the fakes so a scenario can run end to end.
type memoryStore struct {
	bands       map[uuid.UUID]*bandEntity.Band
	members     map[uuid.UUID]map[uuid.UUID]bool
	invitations map[uuid.UUID]*entity.Invitation
	users       map[string]*authEntity.User
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		bands:       map[uuid.UUID]*bandEntity.Band{},
		members:     map[uuid.UUID]map[uuid.UUID]bool{},
		invitations: map[uuid.UUID]*entity.Invitation{},
		users:       map[string]*authEntity.User{},
	}
}

func (m *memoryStore) addBand(name string, leaderID uuid.UUID) uuid.UUID {
	b := &bandEntity.Band{Name: name, LeaderID: leaderID}
	b.ID = uuid.New()
	m.bands[b.ID] = b
	m.members[b.ID] = map[uuid.UUID]bool{leaderID: true}
	return b.ID
}

func (m *memoryStore) addUser(email, name string) *authEntity.User {
	u := &authEntity.User{Email: email, DisplayName: name, Provider: authEntity.ProviderLocal}
	u.ID = uuid.New()
	m.users[email] = u
	return u
}

type memoryInvitationRepo struct{ store *memoryStore }

func (r *memoryInvitationRepo) Create(ctx context.Context, inv *entity.Invitation) error {
	inv.ID = uuid.New()
	inv.CreatedAt = time.Now()
	r.store.invitations[inv.ID] = inv
	return nil
}

func (r *memoryInvitationRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invitation, error) {
	return r.store.invitations[id], nil
}

func (r *memoryInvitationRepo) ListPendingByEmail(ctx context.Context, email string) ([]entity.InvitationDetail, error) {
	var out []entity.InvitationDetail
	for _, inv := range r.store.invitations {
		if inv.InvitedEmail != email {
			continue
		}
		bandName := "Unknown Band"
		if b, ok := r.store.bands[inv.BandID]; ok {
			bandName = b.Name
		}
		out = append(out, entity.InvitationDetail{
			ID:        inv.ID,
			BandID:    inv.BandID,
			BandName:  bandName,
			InvitedBy: inv.InvitedBy,
			CreatedAt: inv.CreatedAt,
		})
	}
	return out, nil
}

func (r *memoryInvitationRepo) CountPendingByEmail(ctx context.Context, email string) (int, error) {
	count := 0
	for _, inv := range r.store.invitations {
		if inv.InvitedEmail == email {
			count++
		}
	}
	return count, nil
}

func (r *memoryInvitationRepo) HasPendingForBandEmail(ctx context.Context, bandID uuid.UUID, email string) (bool, error) {
	for _, inv := range r.store.invitations {
		if inv.BandID == bandID && inv.InvitedEmail == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryInvitationRepo) Accept(ctx context.Context, invitationID, bandID, userID uuid.UUID) error {
	if _, ok := r.store.invitations[invitationID]; !ok {
		return sql.ErrNoRows
	}
	if r.store.members[bandID] == nil {
		r.store.members[bandID] = map[uuid.UUID]bool{}
	}
	r.store.members[bandID][userID] = true
	delete(r.store.invitations, invitationID)
	return nil
}

func (r *memoryInvitationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.store.invitations[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.store.invitations, id)
	return nil
}

type memoryBandRepo struct{ store *memoryStore }

func (r *memoryBandRepo) CreateWithLeader(ctx context.Context, band *bandEntity.Band) error {
	band.ID = r.store.addBand(band.Name, band.LeaderID)
	return nil
}

func (r *memoryBandRepo) GetByID(ctx context.Context, id uuid.UUID) (*bandEntity.Band, error) {
	return r.store.bands[id], nil
}

func (r *memoryBandRepo) ListByMember(ctx context.Context, userID uuid.UUID) ([]bandEntity.Band, error) {
	var out []bandEntity.Band
	for id, members := range r.store.members {
		if members[userID] {
			out = append(out, *r.store.bands[id])
		}
	}
	return out, nil
}

func (r *memoryBandRepo) IsMember(ctx context.Context, bandID, userID uuid.UUID) (bool, error) {
	return r.store.members[bandID][userID], nil
}

func (r *memoryBandRepo) GetMembers(ctx context.Context, bandID uuid.UUID) ([]bandEntity.MemberDetail, error) {
	var out []bandEntity.MemberDetail
	for userID := range r.store.members[bandID] {
		out = append(out, bandEntity.MemberDetail{UserID: userID})
	}
	return out, nil
}

func (r *memoryBandRepo) RemoveMember(ctx context.Context, bandID, userID uuid.UUID) error {
	delete(r.store.members[bandID], userID)
	return nil
}

func (r *memoryBandRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.bands, id)
	delete(r.store.members, id)
	return nil
}

type memoryAuthRepo struct{ store *memoryStore }

func (r *memoryAuthRepo) GetUserByEmail(ctx context.Context, email string) (*authEntity.User, error) {
	return r.store.users[email], nil
}

func (r *memoryAuthRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*authEntity.User, error) {
	for _, u := range r.store.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memoryAuthRepo) CreateUser(ctx context.Context, user *authEntity.User) error {
	user.ID = uuid.New()
	r.store.users[user.Email] = user
	return nil
}

func (r *memoryAuthRepo) UpdateDisplayName(ctx context.Context, userID uuid.UUID, displayName string) error {
	return nil
}

func (r *memoryAuthRepo) UpdatePhotoURL(ctx context.Context, userID uuid.UUID, photoURL string) error {
	return nil
}

func (r *memoryAuthRepo) SaveOAuthState(ctx context.Context, state string, expiresAt time.Time) error {
	return nil
}

func (r *memoryAuthRepo) ConsumeOAuthState(ctx context.Context, state string) (bool, error) {
	return false, nil
}

type recordingNotifier struct {
	created []*notificationDto.CreateNotificationRequest
}

func (n *recordingNotifier) Create(ctx context.Context, req *notificationDto.CreateNotificationRequest) error {
	n.created = append(n.created, req)
	return nil
}

type recordingQueue struct {
	enqueued []queue.InvitationEmailPayload
}

func (q *recordingQueue) EnqueueInvitationEmail(ctx context.Context, payload queue.InvitationEmailPayload) error {
	q.enqueued = append(q.enqueued, payload)
	return nil
}

func (q *recordingQueue) Close() error { return nil }

func newTestService(store *memoryStore) (*InvitationService, *recordingNotifier, *recordingQueue) {
	notifier := &recordingNotifier{}
	q := &recordingQueue{}
	svc := NewInvitationService(
		&memoryInvitationRepo{store: store},
		&memoryBandRepo{store: store},
		&memoryAuthRepo{store: store},
		notifier,
		q,
		nil,
	)
	return svc, notifier, q
}

func TestInviteAcceptJoinsBand(t *testing.T) {
	store := newMemoryStore()
	leader := store.addUser("lead@example.com", "Lead")
	invitee := store.addUser("sax@example.com", "Sax")
	bandID := store.addBand("Brass Section", leader.ID)

	svc, notifier, q := newTestService(store)
	ctx := context.Background()

	inv, appErr := svc.InviteMember(ctx, bandID, &dto.InviteMemberRequest{Email: "sax@example.com"}, leader.ID, leader.DisplayName)
	if appErr != nil {
		t.Fatalf("InviteMember returned error: %v", appErr)
	}
	if len(q.enqueued) != 1 || q.enqueued[0].To != "sax@example.com" {
		t.Errorf("invitation email not enqueued for the invitee: %+v", q.enqueued)
	}
	if len(notifier.created) != 1 || notifier.created[0].UserID != invitee.ID {
		t.Errorf("in-app notification not created for the invitee: %+v", notifier.created)
	}

	if appErr := svc.Accept(ctx, inv.ID, invitee.ID, invitee.Email); appErr != nil {
		t.Fatalf("Accept returned error: %v", appErr)
	}

	if !store.members[bandID][leader.ID] || !store.members[bandID][invitee.ID] {
		t.Errorf("member set = %v, want both leader and invitee", store.members[bandID])
	}
	if len(store.members[bandID]) != 2 {
		t.Errorf("member set has %d entries, want 2", len(store.members[bandID]))
	}

	pending, appErr := svc.CountPending(ctx, invitee.Email)
	if appErr != nil {
		t.Fatalf("CountPending returned error: %v", appErr)
	}
	if pending != 0 {
		t.Errorf("pending invitations after accept = %d, want 0", pending)
	}
}

func TestInviteMemberOnlyLeaderMayInvite(t *testing.T) {
	store := newMemoryStore()
	leader := store.addUser("lead@example.com", "Lead")
	other := store.addUser("drums@example.com", "Drums")
	bandID := store.addBand("Brass Section", leader.ID)
	store.members[bandID][other.ID] = true

	svc, _, _ := newTestService(store)

	_, appErr := svc.InviteMember(context.Background(), bandID, &dto.InviteMemberRequest{Email: "new@example.com"}, other.ID, other.DisplayName)
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", appErr)
	}
}

func TestInviteMemberRejectsExistingMember(t *testing.T) {
	store := newMemoryStore()
	leader := store.addUser("lead@example.com", "Lead")
	member := store.addUser("sax@example.com", "Sax")
	bandID := store.addBand("Brass Section", leader.ID)
	store.members[bandID][member.ID] = true

	svc, _, _ := newTestService(store)

	_, appErr := svc.InviteMember(context.Background(), bandID, &dto.InviteMemberRequest{Email: "sax@example.com"}, leader.ID, leader.DisplayName)
	if appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", appErr)
	}
}

func TestInviteMemberRejectsDuplicatePending(t *testing.T) {
	store := newMemoryStore()
	leader := store.addUser("lead@example.com", "Lead")
	bandID := store.addBand("Brass Section", leader.ID)

	svc, _, _ := newTestService(store)
	ctx := context.Background()

	if _, appErr := svc.InviteMember(ctx, bandID, &dto.InviteMemberRequest{Email: "new@example.com"}, leader.ID, leader.DisplayName); appErr != nil {
		t.Fatalf("first invite failed: %v", appErr)
	}
	_, appErr := svc.InviteMember(ctx, bandID, &dto.InviteMemberRequest{Email: "new@example.com"}, leader.ID, leader.DisplayName)
	if appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists on duplicate pending, got %v", appErr)
	}
}

func TestAcceptOnlyAddresseeMayAccept(t *testing.T) {
	store := newMemoryStore()
	leader := store.addUser("lead@example.com", "Lead")
	stranger := store.addUser("other@example.com", "Other")
	bandID := store.addBand("Brass Section", leader.ID)

	svc, _, _ := newTestService(store)
	ctx := context.Background()

	inv, appErr := svc.InviteMember(ctx, bandID, &dto.InviteMemberRequest{Email: "sax@example.com"}, leader.ID, leader.DisplayName)
	if appErr != nil {
		t.Fatalf("InviteMember returned error: %v", appErr)
	}

	appErr = svc.Accept(ctx, inv.ID, stranger.ID, stranger.Email)
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", appErr)
	}
	if store.members[bandID][stranger.ID] {
		t.Error("stranger was added to the band by a rejected accept")
	}
}

func TestAcceptTwiceSecondAttemptNotFound(t *testing.T) {
	store := newMemoryStore()
	leader := store.addUser("lead@example.com", "Lead")
	invitee := store.addUser("sax@example.com", "Sax")
	bandID := store.addBand("Brass Section", leader.ID)

	svc, _, _ := newTestService(store)
	ctx := context.Background()

	inv, appErr := svc.InviteMember(ctx, bandID, &dto.InviteMemberRequest{Email: "sax@example.com"}, leader.ID, leader.DisplayName)
	if appErr != nil {
		t.Fatalf("InviteMember returned error: %v", appErr)
	}
	if appErr := svc.Accept(ctx, inv.ID, invitee.ID, invitee.Email); appErr != nil {
		t.Fatalf("first accept failed: %v", appErr)
	}

	appErr = svc.Accept(ctx, inv.ID, invitee.ID, invitee.Email)
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("expected ErrNotFound on second accept, got %v", appErr)
	}
}

func TestRejectDeletesInvitationWithoutJoining(t *testing.T) {
	store := newMemoryStore()
	leader := store.addUser("lead@example.com", "Lead")
	invitee := store.addUser("sax@example.com", "Sax")
	bandID := store.addBand("Brass Section", leader.ID)

	svc, _, _ := newTestService(store)
	ctx := context.Background()

	inv, appErr := svc.InviteMember(ctx, bandID, &dto.InviteMemberRequest{Email: "sax@example.com"}, leader.ID, leader.DisplayName)
	if appErr != nil {
		t.Fatalf("InviteMember returned error: %v", appErr)
	}

	if appErr := svc.Reject(ctx, inv.ID, invitee.Email); appErr != nil {
		t.Fatalf("Reject returned error: %v", appErr)
	}
	if store.members[bandID][invitee.ID] {
		t.Error("reject must never add the invitee to the band")
	}
	if len(store.invitations) != 0 {
		t.Errorf("invitation still present after reject: %v", store.invitations)
	}
}

func TestAcceptForDeletedBandConsumesInvitation(t *testing.T) {
	store := newMemoryStore()
	leader := store.addUser("lead@example.com", "Lead")
	invitee := store.addUser("sax@example.com", "Sax")
	bandID := store.addBand("Brass Section", leader.ID)

	svc, _, _ := newTestService(store)
	ctx := context.Background()

	inv, appErr := svc.InviteMember(ctx, bandID, &dto.InviteMemberRequest{Email: "sax@example.com"}, leader.ID, leader.DisplayName)
	if appErr != nil {
		t.Fatalf("InviteMember returned error: %v", appErr)
	}

	delete(store.bands, bandID)
	delete(store.members, bandID)

	appErr = svc.Accept(ctx, inv.ID, invitee.ID, invitee.Email)
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("expected ErrNotFound for a deleted band, got %v", appErr)
	}
	if len(store.invitations) != 0 {
		t.Error("orphaned invitation was not consumed")
	}
}

func TestInviteMemberInvalidEmailRejected(t *testing.T) {
	store := newMemoryStore()
	leader := store.addUser("lead@example.com", "Lead")
	bandID := store.addBand("Brass Section", leader.ID)

	svc, _, _ := newTestService(store)

	for _, email := range []string{"", "   ", "not-an-email"} {
		_, appErr := svc.InviteMember(context.Background(), bandID, &dto.InviteMemberRequest{Email: email}, leader.ID, leader.DisplayName)
		if appErr == nil || appErr.Code != errors.ErrInvalidInput {
			t.Errorf("email %q: expected ErrInvalidInput, got %v", email, appErr)
		}
	}
}
