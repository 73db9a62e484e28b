package service

import (
	"parking_tracker/internal/domain"
	"time"
)

const (
	DefaultCarHourlyRate  int64 = 50
	DefaultBikeHourlyRate int64 = 20

	msPerHour = int64(time.Hour / time.Millisecond)
)

// FareCalculator bills every started hour at a per-vehicle-type rate.
type FareCalculator struct {
	CarHourlyRate  int64
	BikeHourlyRate int64
}

func NewFareCalculator(carRate, bikeRate int64) FareCalculator {
	if carRate <= 0 {
		carRate = DefaultCarHourlyRate
	}
	if bikeRate <= 0 {
		bikeRate = DefaultBikeHourlyRate
	}
	return FareCalculator{CarHourlyRate: carRate, BikeHourlyRate: bikeRate}
}

// ComputeFare uses the default rates.
func ComputeFare(entry, exit time.Time, vehicleType domain.VehicleType) int64 {
	return NewFareCalculator(DefaultCarHourlyRate, DefaultBikeHourlyRate).Compute(entry, exit, vehicleType)
}

func (f FareCalculator) Compute(entry, exit time.Time, vehicleType domain.VehicleType) int64 {
	return BilledHours(entry, exit) * f.Rate(vehicleType)
}

func (f FareCalculator) Rate(vehicleType domain.VehicleType) int64 {
	if vehicleType == domain.VehicleBike {
		return f.BikeHourlyRate
	}
	return f.CarHourlyRate
}

// BilledHours rounds the stay up to whole hours. A zero or negative stay
// (clock skew) still bills one hour.
func BilledHours(entry, exit time.Time) int64 {
	ms := exit.Sub(entry).Milliseconds()
	if ms <= 0 {
		return 1
	}
	return (ms + msPerHour - 1) / msPerHour
}
