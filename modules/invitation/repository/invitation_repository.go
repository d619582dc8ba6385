package repository

import (
	"context"
	"database/sql"
	"time"

	"bandos-api/core/constants"
	"bandos-api/core/database"
	"bandos-api/core/logger"
	"bandos-api/modules/invitation/entity"

	"github.com/google/uuid"
)

// InvitationRepositoryInterface defines the contract for invitation
// persistence.
type InvitationRepositoryInterface interface {
	Create(ctx context.Context, invitation *entity.Invitation) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invitation, error)
	ListPendingByEmail(ctx context.Context, email string) ([]entity.InvitationDetail, error)
	CountPendingByEmail(ctx context.Context, email string) (int, error)
	HasPendingForBandEmail(ctx context.Context, bandID uuid.UUID, email string) (bool, error)
	Accept(ctx context.Context, invitationID uuid.UUID, bandID uuid.UUID, userID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type InvitationRepository struct {
	DB database.Database
}

func NewInvitationRepository(db database.Database) *InvitationRepository {
	return &InvitationRepository{DB: db}
}

func (r *InvitationRepository) Create(ctx context.Context, invitation *entity.Invitation) error {
	query := `
		INSERT INTO invitations (band_id, invited_email, invited_by, status, token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	invitation.CreatedAt = time.Now()
	if invitation.Status == "" {
		invitation.Status = entity.InvitationStatusPending
	}

	row := r.DB.QueryRowContext(ctx, query,
		invitation.BandID,
		invitation.InvitedEmail,
		invitation.InvitedBy,
		invitation.Status,
		invitation.Token,
		invitation.CreatedAt,
	)
	if err := row.Scan(&invitation.ID); err != nil {
		logger.Error("InvitationRepository:Create:Error:", err)
		return err
	}
	return nil
}

func (r *InvitationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invitation, error) {
	query := `
		SELECT id, band_id, invited_email, invited_by, status, token, created_at
		FROM invitations
		WHERE id = $1
	`
	var inv entity.Invitation
	err := r.DB.GetContext(ctx, &inv, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("InvitationRepository:GetByID:Error:", err)
		return nil, err
	}
	return &inv, nil
}

// ListPendingByEmail returns the invitation directory for one address.
// Band and inviter are joined best-effort: missing referents resolve to
// placeholder labels rather than dropping or failing the listing.
func (r *InvitationRepository) ListPendingByEmail(ctx context.Context, email string) ([]entity.InvitationDetail, error) {
	query := `
		SELECT
			i.id,
			i.band_id,
			COALESCE(b.name, $2) AS band_name,
			i.invited_by,
			COALESCE(u.display_name, $3) AS inviter_name,
			i.created_at
		FROM invitations i
		LEFT JOIN bands b ON b.id = i.band_id
		LEFT JOIN users u ON u.id = i.invited_by
		WHERE i.invited_email = $1 AND i.status = 'pending'
		ORDER BY i.created_at DESC
	`
	var invitations []entity.InvitationDetail
	err := r.DB.SelectContext(ctx, &invitations, query, email, constants.UnknownBandLabel, constants.UnknownUserLabel)
	if err != nil {
		if err == sql.ErrNoRows {
			return []entity.InvitationDetail{}, nil
		}
		logger.Error("InvitationRepository:ListPendingByEmail:Error:", err)
		return nil, err
	}
	return invitations, nil
}

func (r *InvitationRepository) CountPendingByEmail(ctx context.Context, email string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM invitations WHERE invited_email = $1 AND status = 'pending'`
	err := r.DB.GetContext(ctx, &count, query, email)
	if err != nil {
		logger.Error("InvitationRepository:CountPendingByEmail:Error:", err)
		return 0, err
	}
	return count, nil
}

func (r *InvitationRepository) HasPendingForBandEmail(ctx context.Context, bandID uuid.UUID, email string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM invitations
			WHERE band_id = $1 AND invited_email = $2 AND status = 'pending'
		)
	`
	err := r.DB.GetContext(ctx, &exists, query, bandID, email)
	if err != nil {
		logger.Error("InvitationRepository:HasPendingForBandEmail:Error:", err)
		return false, err
	}
	return exists, nil
}

// Accept adds the user to the band's member set and deletes the invitation
// in a single transaction. The membership insert is a no-op when the user is
// already a member, so a retry after a partial failure is harmless; a second
// accept of the same invitation fails with sql.ErrNoRows because the row is
// gone.
func (r *InvitationRepository) Accept(ctx context.Context, invitationID uuid.UUID, bandID uuid.UUID, userID uuid.UUID) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("InvitationRepository:Accept:BeginTx:Error:", err)
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO band_members (band_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (band_id, user_id) DO NOTHING
	`, bandID, userID); err != nil {
		logger.Error("InvitationRepository:Accept:AddMember:Error:", err)
		return err
	}

	result, err := tx.ExecContext(ctx, `
		DELETE FROM invitations
		WHERE id = $1
	`, invitationID)
	if err != nil {
		logger.Error("InvitationRepository:Accept:DeleteInvitation:Error:", err)
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	if err := tx.Commit(); err != nil {
		logger.Error("InvitationRepository:Accept:Commit:Error:", err)
		return err
	}
	return nil
}

func (r *InvitationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.DB.SQLx().ExecContext(ctx, `
		DELETE FROM invitations
		WHERE id = $1
	`, id)
	if err != nil {
		logger.Error("InvitationRepository:Delete:Error:", err)
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
