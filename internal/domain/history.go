package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// HistoryRecord is one completed parking session. Records are created once,
// when a vehicle leaves, and never change afterwards.
type HistoryRecord struct {
	ID           snowflake.ID `json:"id"`
	SpotID       string       `json:"spot_id"`
	LicensePlate string       `json:"license_plate"`
	VehicleType  VehicleType  `json:"vehicle_type"`
	EntryTime    time.Time    `json:"entry_time"`
	ExitTime     time.Time    `json:"exit_time"`
	Fare         int64        `json:"fare"`
}

// Duration is the time the vehicle spent in the spot.
func (r HistoryRecord) Duration() time.Duration {
	return r.ExitTime.Sub(r.EntryTime)
}

type HistoryFilterDTO struct {
	Date        *string `form:"date"`         // YYYY-MM-DD, matched against entry time
	VehicleType *string `form:"vehicle_type"` // "car", "bike" or "all"
}
