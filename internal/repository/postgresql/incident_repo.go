package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"parking_reservation/internal/domain"
	"parking_reservation/internal/repository"
)

type pgIncidentRepository struct {
	db *sql.DB
}

func NewPgIncidentRepository(db *sql.DB) repository.IncidentRepository {
	return &pgIncidentRepository{db: db}
}

func (r *pgIncidentRepository) Create(ctx context.Context, incident *domain.Incident) (*domain.Incident, error) {
	query := `INSERT INTO incidents (reference, category, space_id, description, reported_by, reported_at)
	           VALUES ($1, $2, $3, $4, $5, $6)
	           RETURNING id`
	err := exec(ctx, r.db).QueryRowContext(ctx, query,
		incident.Reference, incident.Category, incident.SpaceID,
		incident.Description, incident.ReportedBy, incident.ReportedAt,
	).Scan(&incident.ID)

	if err != nil {
		return nil, fmt.Errorf("IncidentRepository.Create: %w", err)
	}
	return incident, nil
}

func (r *pgIncidentRepository) FindAll(ctx context.Context) ([]domain.Incident, error) {
	query := `SELECT id, reference, category, space_id, description, reported_by, reported_at
	           FROM incidents ORDER BY reported_at DESC`
	rows, err := exec(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("IncidentRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var incidents []domain.Incident
	for rows.Next() {
		var incident domain.Incident
		if err := rows.Scan(
			&incident.ID, &incident.Reference, &incident.Category, &incident.SpaceID,
			&incident.Description, &incident.ReportedBy, &incident.ReportedAt,
		); err != nil {
			return nil, fmt.Errorf("IncidentRepository.FindAll (scanning row): %w", err)
		}
		incident.ReportedAt = incident.ReportedAt.In(time.UTC)
		incidents = append(incidents, incident)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("IncidentRepository.FindAll (rows error): %w", err)
	}
	return incidents, nil
}
