package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parking_reservation/internal/domain"
	"parking_reservation/internal/repository"

	"gopkg.in/guregu/null.v4"
)

const reservationColumns = `id, owner_id, space_id, date, start_time, end_time,
	vehicle_category, plate, status, entry_time, exit_time, created_at, updated_at`

type pgReservationRepository struct {
	db *sql.DB
}

func NewPgReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &pgReservationRepository{db: db}
}

func (r *pgReservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	query := `INSERT INTO reservations
	           (owner_id, space_id, date, start_time, end_time, vehicle_category, plate, status, created_at, updated_at)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	           RETURNING id, created_at, updated_at`
	err := exec(ctx, r.db).QueryRowContext(ctx, query,
		res.OwnerID, res.SpaceID, res.Date, res.StartTime, res.EndTime,
		res.VehicleCategory, res.Plate, res.Status,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("ReservationRepository.Create: %w", err)
	}
	res.CreatedAt = res.CreatedAt.In(time.UTC)
	res.UpdatedAt = res.UpdatedAt.In(time.UTC)
	return res, nil
}

func scanReservation(scan func(dest ...any) error) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	err := scan(
		&res.ID, &res.OwnerID, &res.SpaceID, &res.Date, &res.StartTime, &res.EndTime,
		&res.VehicleCategory, &res.Plate, &res.Status, &res.EntryTime, &res.ExitTime,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if res.EntryTime.Valid {
		res.EntryTime.Time = res.EntryTime.Time.In(time.UTC)
	}
	if res.ExitTime.Valid {
		res.ExitTime.Time = res.ExitTime.Time.In(time.UTC)
	}
	res.CreatedAt = res.CreatedAt.In(time.UTC)
	res.UpdatedAt = res.UpdatedAt.In(time.UTC)
	return res, nil
}

func (r *pgReservationRepository) FindByID(ctx context.Context, id int) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	row := exec(ctx, r.db).QueryRowContext(ctx, query, id)
	res, err := scanReservation(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ReservationRepository.FindByID: %w", err)
	}
	return res, nil
}

func (r *pgReservationRepository) queryReservations(ctx context.Context, query string, args ...any) ([]domain.Reservation, error) {
	rows, err := exec(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}

func (r *pgReservationRepository) FindActiveBySpaceAndDate(ctx context.Context, spaceID int, date string) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
	           FROM reservations
	           WHERE space_id = $1 AND date = $2 AND status = $3
	           ORDER BY start_time ASC`
	reservations, err := r.queryReservations(ctx, query, spaceID, date, domain.ReservationActive)
	if err != nil {
		return nil, fmt.Errorf("ReservationRepository.FindActiveBySpaceAndDate: %w", err)
	}
	return reservations, nil
}

func (r *pgReservationRepository) FindActiveByPlateAndDate(ctx context.Context, plate, date string) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
	           FROM reservations
	           WHERE LOWER(plate) = LOWER($1) AND date = $2 AND status = $3
	           ORDER BY start_time ASC`
	reservations, err := r.queryReservations(ctx, query, plate, date, domain.ReservationActive)
	if err != nil {
		return nil, fmt.Errorf("ReservationRepository.FindActiveByPlateAndDate: %w", err)
	}
	return reservations, nil
}

func (r *pgReservationRepository) FindByOwner(ctx context.Context, ownerID int, onlyActive bool) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
	           FROM reservations WHERE owner_id = $1`
	args := []any{ownerID}
	if onlyActive {
		query += ` AND status = $2 ORDER BY date ASC, start_time ASC`
		args = append(args, domain.ReservationActive)
	} else {
		query += ` ORDER BY date DESC, start_time DESC`
	}
	reservations, err := r.queryReservations(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ReservationRepository.FindByOwner: %w", err)
	}
	return reservations, nil
}

func (r *pgReservationRepository) FindInProgressByDate(ctx context.Context, date string) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
	           FROM reservations
	           WHERE date = $1 AND entry_time IS NOT NULL AND exit_time IS NULL
	           ORDER BY entry_time ASC`
	reservations, err := r.queryReservations(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("ReservationRepository.FindInProgressByDate: %w", err)
	}
	return reservations, nil
}

func (r *pgReservationRepository) FindActiveWithoutEntry(ctx context.Context) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
	           FROM reservations
	           WHERE status = $1 AND entry_time IS NULL
	           ORDER BY date ASC, end_time ASC`
	reservations, err := r.queryReservations(ctx, query, domain.ReservationActive)
	if err != nil {
		return nil, fmt.Errorf("ReservationRepository.FindActiveWithoutEntry: %w", err)
	}
	return reservations, nil
}

func (r *pgReservationRepository) UpdateStatus(ctx context.Context, id int, status domain.ReservationStatus) error {
	query := `UPDATE reservations
	           SET status = $1, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $2`
	result, err := exec(ctx, r.db).ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("ReservationRepository.UpdateStatus: %w", err)
	}
	return checkAffected(result)
}

func (r *pgReservationRepository) SetEntryTime(ctx context.Context, id int, entry null.Time) error {
	query := `UPDATE reservations
	           SET entry_time = $1, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $2`
	result, err := exec(ctx, r.db).ExecContext(ctx, query, entry, id)
	if err != nil {
		return fmt.Errorf("ReservationRepository.SetEntryTime: %w", err)
	}
	return checkAffected(result)
}

func (r *pgReservationRepository) SetExit(ctx context.Context, id int, exit null.Time, status domain.ReservationStatus) error {
	query := `UPDATE reservations
	           SET exit_time = $1, status = $2, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $3`
	result, err := exec(ctx, r.db).ExecContext(ctx, query, exit, status, id)
	if err != nil {
		return fmt.Errorf("ReservationRepository.SetExit: %w", err)
	}
	return checkAffected(result)
}

func checkAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
