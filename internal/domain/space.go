package domain

import "time"

type SpaceCategory string

const (
	CategoryVehicle    SpaceCategory = "VEHICLE"
	CategoryMotorcycle SpaceCategory = "MOTORCYCLE"
	CategoryAccessible SpaceCategory = "ACCESSIBLE"
)

type SpaceStatus string

const (
	SpaceFree     SpaceStatus = "FREE"
	SpaceReserved SpaceStatus = "RESERVED"
	SpaceOccupied SpaceStatus = "OCCUPIED"
	SpaceBlocked  SpaceStatus = "BLOCKED"
)

// ParkingSpace is a single bookable space. Number is the external label
// painted on the ground; it is unique and immutable after creation. Status is
// maintained by the scheduler and the occupancy tracker, never set directly
// by end users.
type ParkingSpace struct {
	ID        int           `json:"id"`
	Number    int           `json:"number"`
	Category  SpaceCategory `json:"category"`
	Status    SpaceStatus   `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type ParkingSpaceDTO struct {
	Number   int    `json:"number" binding:"required,min=1"`
	Category string `json:"category" binding:"required"`
}

type SpaceStatusDTO struct {
	Status string `json:"status" binding:"required"`
}

func ValidSpaceCategory(c SpaceCategory) bool {
	switch c {
	case CategoryVehicle, CategoryMotorcycle, CategoryAccessible:
		return true
	}
	return false
}

func ValidSpaceStatus(s SpaceStatus) bool {
	switch s {
	case SpaceFree, SpaceReserved, SpaceOccupied, SpaceBlocked:
		return true
	}
	return false
}

// SpaceStatusNotification is pushed to websocket subscribers whenever a
// space changes status.
type SpaceStatusNotification struct {
	SpaceID   int         `json:"space_id"`
	Number    int         `json:"number"`
	Status    SpaceStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
}
