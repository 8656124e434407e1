package service

import (
	"context"
	"errors"
	"fmt"

	"parking_reservation/internal/domain"
	"parking_reservation/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gopkg.in/guregu/null.v4"
)

// IncidentService records guard reports. Incidents are append-only; there is
// no update or delete.
type IncidentService struct {
	incidentRepo repository.IncidentRepository
	spaceRepo    repository.SpaceRepository
	clock        Clock
}

func NewIncidentService(incidentRepo repository.IncidentRepository, spaceRepo repository.SpaceRepository, clock Clock) *IncidentService {
	return &IncidentService{incidentRepo: incidentRepo, spaceRepo: spaceRepo, clock: clock}
}

func (s *IncidentService) Report(ctx context.Context, reporterID int, dto domain.IncidentDTO) (*domain.Incident, error) {
	category := domain.IncidentCategory(dto.Category)
	if !domain.ValidIncidentCategory(category) {
		return nil, fmt.Errorf("invalid incident category: %s", dto.Category)
	}

	var spaceID null.Int
	if dto.SpaceID != nil {
		if _, err := s.spaceRepo.FindByID(ctx, *dto.SpaceID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: space %d", repository.ErrNotFound, *dto.SpaceID)
			}
			return nil, err
		}
		spaceID = null.IntFrom(int64(*dto.SpaceID))
	}

	incident := &domain.Incident{
		Reference:   uuid.NewString(),
		Category:    category,
		SpaceID:     spaceID,
		Description: dto.Description,
		ReportedBy:  reporterID,
		ReportedAt:  s.clock.Now().UTC(),
	}
	created, err := s.incidentRepo.Create(ctx, incident)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"incident": created.Reference, "category": created.Category}).Info("incident reported")
	return created, nil
}

func (s *IncidentService) List(ctx context.Context) ([]domain.Incident, error) {
	return s.incidentRepo.FindAll(ctx)
}
