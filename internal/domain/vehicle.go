package domain

import "time"

// Vehicle is a registry entry owned by a user, used to pre-fill bookings.
// Plates are globally unique.
type Vehicle struct {
	ID          int             `json:"id"`
	OwnerID     int             `json:"owner_id"`
	Plate       string          `json:"plate"`
	Category    VehicleCategory `json:"category"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type VehicleDTO struct {
	Plate       string `json:"plate" binding:"required,max=20"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description,omitempty" binding:"max=100"`
}
