package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type SpotStatus string

const (
	SpotAvailable   SpotStatus = "available"
	SpotOccupied    SpotStatus = "occupied"
	SpotReserved    SpotStatus = "reserved"
	SpotProblematic SpotStatus = "problematic"
)

type VehicleType string

const (
	VehicleCar  VehicleType = "car"
	VehicleBike VehicleType = "bike"
)

func (v VehicleType) Valid() bool {
	return v == VehicleCar || v == VehicleBike
}

// Occupant is the vehicle currently parked in a spot.
type Occupant struct {
	LicensePlate string    `json:"license_plate"`
	EntryTime    time.Time `json:"entry_time"`
}

// Spot is a single parking space. Type is fixed at creation; Occupant is set
// if and only if Status is SpotOccupied.
type Spot struct {
	ID                     string      `json:"id"` // "<floor>-<NN>", e.g. "B1-03"
	Floor                  string      `json:"floor"`
	Type                   VehicleType `json:"type"`
	Status                 SpotStatus  `json:"status"`
	Occupant               *Occupant   `json:"occupant,omitempty"`
	LastStatusUpdateSource string      `json:"last_status_update_source,omitempty"`
	UpdatedAt              null.Time   `json:"updated_at"`
}

// Clone returns a copy that shares no memory with s.
func (s Spot) Clone() Spot {
	if s.Occupant != nil {
		occ := *s.Occupant
		s.Occupant = &occ
	}
	return s
}

// FloorSummary counts spots per status on one floor.
type FloorSummary struct {
	Floor       string `json:"floor"`
	Total       int    `json:"total"`
	Available   int    `json:"available"`
	Occupied    int    `json:"occupied"`
	Reserved    int    `json:"reserved"`
	Problematic int    `json:"problematic"`
}

// OccupySpotDTO is the body of POST /spots/:spot_id/occupy.
type OccupySpotDTO struct {
	LicensePlate string      `json:"license_plate" binding:"required"`
	VehicleType  VehicleType `json:"vehicle_type,omitempty" binding:"omitempty,oneof=car bike"`
}
