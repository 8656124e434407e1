package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parking_reservation/internal/domain"
	"parking_reservation/internal/repository"

	"github.com/lib/pq"
)

type pgSpaceRepository struct {
	db *sql.DB
}

func NewPgSpaceRepository(db *sql.DB) repository.SpaceRepository {
	return &pgSpaceRepository{db: db}
}

func (r *pgSpaceRepository) Create(ctx context.Context, space *domain.ParkingSpace) (*domain.ParkingSpace, error) {
	query := `INSERT INTO parking_spaces (number, category, status, created_at, updated_at)
	           VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	           RETURNING id, created_at, updated_at`
	err := exec(ctx, r.db).QueryRowContext(ctx, query,
		space.Number, space.Category, space.Status,
	).Scan(&space.ID, &space.CreatedAt, &space.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: space number %d already exists", repository.ErrDuplicateEntry, space.Number)
		}
		return nil, fmt.Errorf("SpaceRepository.Create: %w", err)
	}
	space.CreatedAt = space.CreatedAt.In(time.UTC)
	space.UpdatedAt = space.UpdatedAt.In(time.UTC)
	return space, nil
}

func (r *pgSpaceRepository) FindByID(ctx context.Context, id int) (*domain.ParkingSpace, error) {
	space := &domain.ParkingSpace{}
	query := `SELECT id, number, category, status, created_at, updated_at
	           FROM parking_spaces WHERE id = $1`
	err := exec(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&space.ID, &space.Number, &space.Category, &space.Status, &space.CreatedAt, &space.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("SpaceRepository.FindByID: %w", err)
	}
	space.CreatedAt = space.CreatedAt.In(time.UTC)
	space.UpdatedAt = space.UpdatedAt.In(time.UTC)
	return space, nil
}

func (r *pgSpaceRepository) FindByNumber(ctx context.Context, number int) (*domain.ParkingSpace, error) {
	space := &domain.ParkingSpace{}
	query := `SELECT id, number, category, status, created_at, updated_at
	           FROM parking_spaces WHERE number = $1`
	err := exec(ctx, r.db).QueryRowContext(ctx, query, number).Scan(
		&space.ID, &space.Number, &space.Category, &space.Status, &space.CreatedAt, &space.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("SpaceRepository.FindByNumber: %w", err)
	}
	space.CreatedAt = space.CreatedAt.In(time.UTC)
	space.UpdatedAt = space.UpdatedAt.In(time.UTC)
	return space, nil
}

func (r *pgSpaceRepository) FindAll(ctx context.Context) ([]domain.ParkingSpace, error) {
	query := `SELECT id, number, category, status, created_at, updated_at
	           FROM parking_spaces ORDER BY number ASC`
	rows, err := exec(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("SpaceRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var spaces []domain.ParkingSpace
	for rows.Next() {
		var space domain.ParkingSpace
		if err := rows.Scan(
			&space.ID, &space.Number, &space.Category, &space.Status, &space.CreatedAt, &space.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("SpaceRepository.FindAll (scanning row): %w", err)
		}
		space.CreatedAt = space.CreatedAt.In(time.UTC)
		space.UpdatedAt = space.UpdatedAt.In(time.UTC)
		spaces = append(spaces, space)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("SpaceRepository.FindAll (rows error): %w", err)
	}
	return spaces, nil
}

func (r *pgSpaceRepository) UpdateStatus(ctx context.Context, id int, status domain.SpaceStatus) error {
	query := `UPDATE parking_spaces
	           SET status = $1, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $2`
	result, err := exec(ctx, r.db).ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("SpaceRepository.UpdateStatus: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("SpaceRepository.UpdateStatus (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
