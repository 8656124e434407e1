package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type VehicleCategory string

const (
	VehicleCar        VehicleCategory = "CAR"
	VehicleMotorcycle VehicleCategory = "MOTORCYCLE"
)

type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "ACTIVE"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationExpired   ReservationStatus = "EXPIRED"
)

// Reservation is a time-boxed claim on a space. Date plus StartTime/EndTime
// ("2006-01-02" and "15:04") define the booked window; EntryTime/ExitTime
// record the physical occupancy session, which runs on its own timeline.
type Reservation struct {
	ID              int               `json:"id"`
	OwnerID         int               `json:"owner_id"`
	SpaceID         int               `json:"space_id"`
	Date            string            `json:"date"`
	StartTime       string            `json:"start_time"`
	EndTime         string            `json:"end_time"`
	VehicleCategory VehicleCategory   `json:"vehicle_category"`
	Plate           string            `json:"plate"`
	Status          ReservationStatus `json:"status"`
	EntryTime       null.Time         `json:"entry_time"`
	ExitTime        null.Time         `json:"exit_time"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	Space *ParkingSpace `json:"space,omitempty"`
}

type BookingDTO struct {
	SpaceID         int    `json:"space_id" binding:"required"`
	Date            string `json:"date" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
	VehicleCategory string `json:"vehicle_category" binding:"required"`
	Plate           string `json:"plate" binding:"required,max=20"`
}

type PlateLookupDTO struct {
	Plate string `json:"plate" binding:"required"`
}

func ValidVehicleCategory(c VehicleCategory) bool {
	switch c {
	case VehicleCar, VehicleMotorcycle:
		return true
	}
	return false
}
