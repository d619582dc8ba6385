package repository

import (
	"context"
	"database/sql"
	"time"

	"bandos-api/core/database"
	"bandos-api/core/logger"
	"bandos-api/modules/auth/entity"

	"github.com/google/uuid"
)

// AuthRepositoryInterface defines the contract for user and OAuth state
// persistence.
type AuthRepositoryInterface interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	CreateUser(ctx context.Context, user *entity.User) error
	UpdateDisplayName(ctx context.Context, userID uuid.UUID, displayName string) error
	UpdatePhotoURL(ctx context.Context, userID uuid.UUID, photoURL string) error

	SaveOAuthState(ctx context.Context, state string, expiresAt time.Time) error
	ConsumeOAuthState(ctx context.Context, state string) (bool, error)
}

type AuthRepository struct {
	DB database.Database
}

func NewAuthRepository(db database.Database) *AuthRepository {
	return &AuthRepository{DB: db}
}

func (r *AuthRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	query := `
		SELECT id, email, display_name, photo_url, password, provider, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	err := r.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByEmail:Error:", err)
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	query := `
		SELECT id, email, display_name, photo_url, password, provider, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	err := r.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByID:Error:", err)
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) CreateUser(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (email, display_name, photo_url, password, provider, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	row := r.DB.QueryRowContext(ctx, query,
		user.Email,
		user.DisplayName,
		user.PhotoURL,
		user.Password,
		user.Provider,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err := row.Scan(&user.ID); err != nil {
		logger.Error("AuthRepository:CreateUser:Error:", err)
		return err
	}
	return nil
}

func (r *AuthRepository) UpdateDisplayName(ctx context.Context, userID uuid.UUID, displayName string) error {
	query := `
		UPDATE users
		SET display_name = $1, updated_at = NOW()
		WHERE id = $2
	`
	result, err := r.DB.SQLx().ExecContext(ctx, query, displayName, userID)
	if err != nil {
		logger.Error("AuthRepository:UpdateDisplayName:Error:", err)
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

func (r *AuthRepository) UpdatePhotoURL(ctx context.Context, userID uuid.UUID, photoURL string) error {
	query := `
		UPDATE users
		SET photo_url = $1, updated_at = NOW()
		WHERE id = $2
	`
	result, err := r.DB.SQLx().ExecContext(ctx, query, photoURL, userID)
	if err != nil {
		logger.Error("AuthRepository:UpdatePhotoURL:Error:", err)
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

func (r *AuthRepository) SaveOAuthState(ctx context.Context, state string, expiresAt time.Time) error {
	query := `
		INSERT INTO oauth_states (state, expires_at, created_at)
		VALUES ($1, $2, NOW())
	`
	if err := r.DB.ExecContext(ctx, query, state, expiresAt); err != nil {
		logger.Error("AuthRepository:SaveOAuthState:Error:", err)
		return err
	}
	return nil
}

// ConsumeOAuthState deletes the state and reports whether it existed and
// was still valid. One-shot: a replayed state never matches twice.
func (r *AuthRepository) ConsumeOAuthState(ctx context.Context, state string) (bool, error) {
	query := `
		DELETE FROM oauth_states
		WHERE state = $1 AND expires_at > NOW()
	`
	result, err := r.DB.SQLx().ExecContext(ctx, query, state)
	if err != nil {
		logger.Error("AuthRepository:ConsumeOAuthState:Error:", err)
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}
