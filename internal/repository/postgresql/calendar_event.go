package postgresql

import (
	"context"
	"time"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/calendar"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type eventRepositoryImpl struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) calendar.EventRepository {
	return &eventRepositoryImpl{db: db}
}

const eventColumns = `id, company_id, title, description, event_type, start_date,
	end_date, color, created_by, created_at, updated_at`

func scanEvent(row pgx.Row) (calendar.Event, error) {
	var e calendar.Event
	err := row.Scan(
		&e.ID,
		&e.CompanyID,
		&e.Title,
		&e.Description,
		&e.EventType,
		&e.StartDate,
		&e.EndDate,
		&e.Color,
		&e.CreatedBy,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// Create implements calendar.EventRepository.
func (r *eventRepositoryImpl) Create(ctx context.Context, event calendar.Event) (calendar.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO calendar_events (id, company_id, title, description, event_type, start_date, end_date, color, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + eventColumns

	return scanEvent(q.QueryRow(ctx, query,
		event.ID, event.CompanyID, event.Title, event.Description, event.EventType,
		event.StartDate, event.EndDate, event.Color, event.CreatedBy))
}

// GetByID implements calendar.EventRepository.
func (r *eventRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (calendar.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE id = $1 AND company_id = $2`
	return scanEvent(q.QueryRow(ctx, query, id, companyID))
}

// ListInRange implements calendar.EventRepository.
func (r *eventRepositoryImpl) ListInRange(ctx context.Context, companyID string, from, to time.Time) ([]calendar.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM calendar_events
		WHERE company_id = $1 AND start_date <= $2 AND COALESCE(end_date, start_date) >= $3
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, companyID, to, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []calendar.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Update implements calendar.EventRepository.
func (r *eventRepositoryImpl) Update(ctx context.Context, event calendar.Event) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE calendar_events
		SET title = $1, description = $2, event_type = $3, start_date = $4, end_date = $5, color = $6, updated_at = NOW()
		WHERE id = $7 AND company_id = $8
	`

	tag, err := q.Exec(ctx, query,
		event.Title, event.Description, event.EventType, event.StartDate,
		event.EndDate, event.Color, event.ID, event.CompanyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete implements calendar.EventRepository.
func (r *eventRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM calendar_events WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
