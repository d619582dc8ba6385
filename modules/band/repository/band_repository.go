package repository

import (
	"context"
	"database/sql"
	"time"

	"bandos-api/core/constants"
	"bandos-api/core/database"
	"bandos-api/core/logger"
	"bandos-api/modules/band/entity"

	"github.com/google/uuid"
)

// BandRepositoryInterface defines the contract for band persistence.
type BandRepositoryInterface interface {
	CreateWithLeader(ctx context.Context, band *entity.Band) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Band, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]entity.Band, error)
	IsMember(ctx context.Context, bandID uuid.UUID, userID uuid.UUID) (bool, error)
	GetMembers(ctx context.Context, bandID uuid.UUID) ([]entity.MemberDetail, error)
	RemoveMember(ctx context.Context, bandID uuid.UUID, userID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type BandRepository struct {
	DB database.Database
}

func NewBandRepository(db database.Database) *BandRepository {
	return &BandRepository{DB: db}
}

// CreateWithLeader inserts the band and its leader membership in one
// transaction so the leader is a member from the first moment.
func (r *BandRepository) CreateWithLeader(ctx context.Context, band *entity.Band) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("BandRepository:CreateWithLeader:BeginTx:Error:", err)
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	band.CreatedAt = now
	band.UpdatedAt = now

	row := tx.QueryRowContext(ctx, `
		INSERT INTO bands (name, slug, leader_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, band.Name, band.Slug, band.LeaderID, band.CreatedAt, band.UpdatedAt)
	if err := row.Scan(&band.ID); err != nil {
		logger.Error("BandRepository:CreateWithLeader:Insert:Error:", err)
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO band_members (band_id, user_id, created_at)
		VALUES ($1, $2, $3)
	`, band.ID, band.LeaderID, now); err != nil {
		logger.Error("BandRepository:CreateWithLeader:InsertLeader:Error:", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("BandRepository:CreateWithLeader:Commit:Error:", err)
		return err
	}
	return nil
}

func (r *BandRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Band, error) {
	var band entity.Band
	query := `
		SELECT id, name, slug, leader_id, created_at, updated_at
		FROM bands
		WHERE id = $1
	`
	err := r.DB.GetContext(ctx, &band, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BandRepository:GetByID:Error:", err)
		return nil, err
	}
	return &band, nil
}

func (r *BandRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]entity.Band, error) {
	query := `
		SELECT b.id, b.name, b.slug, b.leader_id, b.created_at, b.updated_at
		FROM bands b
		INNER JOIN band_members bm ON bm.band_id = b.id
		WHERE bm.user_id = $1
		ORDER BY b.created_at DESC
	`
	var bands []entity.Band
	err := r.DB.SelectContext(ctx, &bands, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return []entity.Band{}, nil
		}
		logger.Error("BandRepository:ListByMember:Error:", err)
		return nil, err
	}
	return bands, nil
}

func (r *BandRepository) IsMember(ctx context.Context, bandID uuid.UUID, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM band_members
			WHERE band_id = $1 AND user_id = $2
		)
	`
	err := r.DB.GetContext(ctx, &exists, query, bandID, userID)
	if err != nil {
		logger.Error("BandRepository:IsMember:Error:", err)
		return false, err
	}
	return exists, nil
}

// GetMembers joins the member set with user profiles. Deleted profiles
// degrade to the placeholder display name instead of dropping the row.
func (r *BandRepository) GetMembers(ctx context.Context, bandID uuid.UUID) ([]entity.MemberDetail, error) {
	query := `
		SELECT
			bm.user_id,
			COALESCE(u.display_name, $2) AS display_name,
			u.photo_url,
			bm.created_at AS joined_at
		FROM band_members bm
		LEFT JOIN users u ON u.id = bm.user_id
		WHERE bm.band_id = $1
		ORDER BY bm.created_at ASC
	`
	var members []entity.MemberDetail
	err := r.DB.SelectContext(ctx, &members, query, bandID, constants.UnknownUserLabel)
	if err != nil {
		if err == sql.ErrNoRows {
			return []entity.MemberDetail{}, nil
		}
		logger.Error("BandRepository:GetMembers:Error:", err)
		return nil, err
	}
	return members, nil
}

func (r *BandRepository) RemoveMember(ctx context.Context, bandID uuid.UUID, userID uuid.UUID) error {
	query := `
		DELETE FROM band_members
		WHERE band_id = $1 AND user_id = $2
	`
	result, err := r.DB.SQLx().ExecContext(ctx, query, bandID, userID)
	if err != nil {
		logger.Error("BandRepository:RemoveMember:Error:", err)
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		logger.Error("BandRepository:RemoveMember:RowsAffected:Error:", err)
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the band; memberships go with it via cascade. Events and
// invitations referencing the band are left behind on purpose.
func (r *BandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM bands
		WHERE id = $1
	`
	result, err := r.DB.SQLx().ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("BandRepository:Delete:Error:", err)
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		logger.Error("BandRepository:Delete:RowsAffected:Error:", err)
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
