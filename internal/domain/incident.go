package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type IncidentCategory string

const (
	IncidentNoReservation     IncidentCategory = "NO_RESERVATION"
	IncidentSpaceDamage       IncidentCategory = "SPACE_DAMAGE"
	IncidentImproperOccupancy IncidentCategory = "IMPROPER_OCCUPANCY"
	IncidentOther             IncidentCategory = "OTHER"
)

// Incident is an append-only log entry reported by a guard. The space
// reference is optional; damage to common areas has no space to point at.
type Incident struct {
	ID          int              `json:"id"`
	Reference   string           `json:"reference"`
	Category    IncidentCategory `json:"category"`
	SpaceID     null.Int         `json:"space_id"`
	Description string           `json:"description"`
	ReportedBy  int              `json:"reported_by"`
	ReportedAt  time.Time        `json:"reported_at"`
}

type IncidentDTO struct {
	Category    string `json:"category" binding:"required"`
	SpaceID     *int   `json:"space_id,omitempty"`
	Description string `json:"description" binding:"required"`
}

func ValidIncidentCategory(c IncidentCategory) bool {
	switch c {
	case IncidentNoReservation, IncidentSpaceDamage, IncidentImproperOccupancy, IncidentOther:
		return true
	}
	return false
}
