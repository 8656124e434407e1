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

type pgVehicleRepository struct {
	db *sql.DB
}

func NewPgVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &pgVehicleRepository{db: db}
}

func (r *pgVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	query := `INSERT INTO vehicles (owner_id, plate, category, description, created_at, updated_at)
	           VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	           RETURNING id, created_at, updated_at`
	err := exec(ctx, r.db).QueryRowContext(ctx, query,
		vehicle.OwnerID, vehicle.Plate, vehicle.Category,
		sql.NullString{String: vehicle.Description, Valid: vehicle.Description != ""},
	).Scan(&vehicle.ID, &vehicle.CreatedAt, &vehicle.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: plate %q already registered", repository.ErrDuplicateEntry, vehicle.Plate)
		}
		return nil, fmt.Errorf("VehicleRepository.Create: %w", err)
	}
	vehicle.CreatedAt = vehicle.CreatedAt.In(time.UTC)
	vehicle.UpdatedAt = vehicle.UpdatedAt.In(time.UTC)
	return vehicle, nil
}

func (r *pgVehicleRepository) FindByID(ctx context.Context, id int) (*domain.Vehicle, error) {
	vehicle := &domain.Vehicle{}
	var description sql.NullString
	query := `SELECT id, owner_id, plate, category, description, created_at, updated_at
	           FROM vehicles WHERE id = $1`
	err := exec(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&vehicle.ID, &vehicle.OwnerID, &vehicle.Plate, &vehicle.Category,
		&description, &vehicle.CreatedAt, &vehicle.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("VehicleRepository.FindByID: %w", err)
	}
	if description.Valid {
		vehicle.Description = description.String
	}
	vehicle.CreatedAt = vehicle.CreatedAt.In(time.UTC)
	vehicle.UpdatedAt = vehicle.UpdatedAt.In(time.UTC)
	return vehicle, nil
}

func (r *pgVehicleRepository) FindByOwner(ctx context.Context, ownerID int) ([]domain.Vehicle, error) {
	query := `SELECT id, owner_id, plate, category, description, created_at, updated_at
	           FROM vehicles WHERE owner_id = $1 ORDER BY plate ASC`
	rows, err := exec(ctx, r.db).QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("VehicleRepository.FindByOwner: %w", err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var vehicle domain.Vehicle
		var description sql.NullString
		if err := rows.Scan(
			&vehicle.ID, &vehicle.OwnerID, &vehicle.Plate, &vehicle.Category,
			&description, &vehicle.CreatedAt, &vehicle.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("VehicleRepository.FindByOwner (scanning row): %w", err)
		}
		if description.Valid {
			vehicle.Description = description.String
		}
		vehicle.CreatedAt = vehicle.CreatedAt.In(time.UTC)
		vehicle.UpdatedAt = vehicle.UpdatedAt.In(time.UTC)
		vehicles = append(vehicles, vehicle)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("VehicleRepository.FindByOwner (rows error): %w", err)
	}
	return vehicles, nil
}

func (r *pgVehicleRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM vehicles WHERE id = $1`
	result, err := exec(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("VehicleRepository.Delete: %w", err)
	}
	return checkAffected(result)
}
