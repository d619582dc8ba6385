package repository

import (
	"context"
	"database/sql"
	"time"

	"bandos-api/core/constants"
	"bandos-api/core/database"
	"bandos-api/core/logger"
	"bandos-api/modules/event/entity"

	"github.com/google/uuid"
)

// EventRepositoryInterface defines the contract for event persistence.
type EventRepositoryInterface interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.EventDetail, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]entity.EventDetail, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type EventRepository struct {
	DB database.Database
}

func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (band_id, title, event_date, location, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	event.CreatedAt = time.Now()

	row := r.DB.QueryRowContext(ctx, query,
		event.BandID,
		event.Title,
		event.EventDate,
		event.Location,
		event.CreatedBy,
		event.CreatedAt,
	)
	if err := row.Scan(&event.ID); err != nil {
		logger.Error("EventRepository:Create:Error:", err)
		return err
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.EventDetail, error) {
	query := `
		SELECT
			e.id, e.band_id, e.title, e.event_date, e.location, e.created_by, e.created_at,
			COALESCE(b.name, $2) AS band_name
		FROM events e
		LEFT JOIN bands b ON b.id = e.band_id
		WHERE e.id = $1
	`
	var event entity.EventDetail
	err := r.DB.GetContext(ctx, &event, query, id, constants.UnknownBandLabel)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetByID:Error:", err)
		return nil, err
	}
	return &event, nil
}

// ListByMember returns the events of every band the user belongs to, plus
// any orphaned events the user created whose band has been deleted.
func (r *EventRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]entity.EventDetail, error) {
	query := `
		SELECT
			e.id, e.band_id, e.title, e.event_date, e.location, e.created_by, e.created_at,
			COALESCE(b.name, $2) AS band_name
		FROM events e
		LEFT JOIN bands b ON b.id = e.band_id
		WHERE e.band_id IN (SELECT band_id FROM band_members WHERE user_id = $1)
		   OR (b.id IS NULL AND e.created_by = $1)
		ORDER BY e.event_date ASC
	`
	var events []entity.EventDetail
	err := r.DB.SelectContext(ctx, &events, query, userID, constants.UnknownBandLabel)
	if err != nil {
		if err == sql.ErrNoRows {
			return []entity.EventDetail{}, nil
		}
		logger.Error("EventRepository:ListByMember:Error:", err)
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.SQLx().ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("EventRepository:Delete:Error:", err)
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
