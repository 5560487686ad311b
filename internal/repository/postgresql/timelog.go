package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/attendance"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timeLogRepositoryImpl struct {
	db *database.DB
}

func NewTimeLogRepository(db *database.DB) attendance.TimeLogRepository {
	return &timeLogRepositoryImpl{db: db}
}

// Check-in/check-out columns are stored as text ("HH:mm:ss") so that the
// value round-trips exactly as recorded.
const timeLogColumns = `t.id, t.employee_id, t.company_id, t.log_date, t.check_in_time,
	t.check_out_time, t.total_working_hours, t.note, t.created_at, t.updated_at`

func scanTimeLog(row pgx.Row, withEmployee bool) (attendance.TimeLog, error) {
	var t attendance.TimeLog
	dest := []interface{}{
		&t.ID,
		&t.EmployeeID,
		&t.CompanyID,
		&t.LogDate,
		&t.CheckInTime,
		&t.CheckOutTime,
		&t.TotalWorkingHours,
		&t.Note,
		&t.CreatedAt,
		&t.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &t.EmployeeName, &t.EmployeePosition)
	}
	err := row.Scan(dest...)
	return t, err
}

// Create implements attendance.TimeLogRepository.
func (r *timeLogRepositoryImpl) Create(ctx context.Context, log attendance.TimeLog) (attendance.TimeLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_logs AS t (id, employee_id, company_id, log_date, check_in_time, check_out_time, total_working_hours, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + timeLogColumns

	return scanTimeLog(q.QueryRow(ctx, query,
		log.ID, log.EmployeeID, log.CompanyID, log.LogDate, log.CheckInTime,
		log.CheckOutTime, log.TotalWorkingHours, log.Note), false)
}

// GetByID implements attendance.TimeLogRepository.
func (r *timeLogRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (attendance.TimeLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeLogColumns + `, e.full_name, e.position
		FROM time_logs t
		JOIN employees e ON e.id = t.employee_id
		WHERE t.id = $1 AND t.company_id = $2
	`

	return scanTimeLog(q.QueryRow(ctx, query, id, companyID), true)
}

// GetOpenLog implements attendance.TimeLogRepository.
func (r *timeLogRepositoryImpl) GetOpenLog(ctx context.Context, employeeID string, companyID string) (*attendance.TimeLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeLogColumns + `
		FROM time_logs t
		WHERE t.employee_id = $1 AND t.company_id = $2
		  AND t.check_in_time IS NOT NULL AND t.check_out_time IS NULL
		ORDER BY t.log_date DESC
		LIMIT 1
	`

	log, err := scanTimeLog(q.QueryRow(ctx, query, employeeID, companyID), false)
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// HasCheckedInOn implements attendance.TimeLogRepository.
func (r *timeLogRepositoryImpl) HasCheckedInOn(ctx context.Context, employeeID string, dateLocal string, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM time_logs
			WHERE employee_id = $1 AND company_id = $2 AND log_date = $3
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, companyID, dateLocal).Scan(&exists)
	return exists, err
}

// Update implements attendance.TimeLogRepository.
func (r *timeLogRepositoryImpl) Update(ctx context.Context, log attendance.TimeLog) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_logs
		SET check_in_time = $1, check_out_time = $2, total_working_hours = $3, note = $4, updated_at = NOW()
		WHERE id = $5 AND company_id = $6
	`

	tag, err := q.Exec(ctx, query,
		log.CheckInTime, log.CheckOutTime, log.TotalWorkingHours, log.Note, log.ID, log.CompanyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete implements attendance.TimeLogRepository.
func (r *timeLogRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM time_logs WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListByEmployee implements attendance.TimeLogRepository.
func (r *timeLogRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter attendance.TimeLogFilter, companyID string) ([]attendance.TimeLog, int64, error) {
	filter.EmployeeID = employeeID
	return r.list(ctx, filter, companyID)
}

// ListByCompany implements attendance.TimeLogRepository.
func (r *timeLogRepositoryImpl) ListByCompany(ctx context.Context, filter attendance.TimeLogFilter, companyID string) ([]attendance.TimeLog, int64, error) {
	return r.list(ctx, filter, companyID)
}

func (r *timeLogRepositoryImpl) list(ctx context.Context, filter attendance.TimeLogFilter, companyID string) ([]attendance.TimeLog, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE t.company_id = $1`
	args := []interface{}{companyID}

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where += fmt.Sprintf(` AND t.employee_id = $%d`, len(args))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		where += fmt.Sprintf(` AND EXTRACT(YEAR FROM t.log_date) = $%d`, len(args))
	}
	if filter.Month != 0 {
		args = append(args, filter.Month)
		where += fmt.Sprintf(` AND EXTRACT(MONTH FROM t.log_date) = $%d`, len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM time_logs t ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `
		SELECT ` + timeLogColumns + `, e.full_name, e.position
		FROM time_logs t
		JOIN employees e ON e.id = t.employee_id ` + where +
		fmt.Sprintf(` ORDER BY t.log_date DESC, t.check_in_time DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var logs []attendance.TimeLog
	for rows.Next() {
		log, err := scanTimeLog(rows, true)
		if err != nil {
			return nil, 0, err
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// ListStaleOpenLogs implements attendance.TimeLogRepository.
func (r *timeLogRepositoryImpl) ListStaleOpenLogs(ctx context.Context, before time.Time) ([]attendance.TimeLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeLogColumns + `
		FROM time_logs t
		WHERE t.check_in_time IS NOT NULL AND t.check_out_time IS NULL AND t.log_date < $1
		ORDER BY t.log_date ASC
	`

	rows, err := q.Query(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []attendance.TimeLog
	for rows.Next() {
		log, err := scanTimeLog(rows, false)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}
