package service

import (
	"math"
	"parking_tracker/internal/domain"
	"time"
)

// ComputeStatistics derives dashboard figures from records (newest first, as
// returned by the ledger). now selects the "current month".
func ComputeStatistics(records []domain.HistoryRecord, now time.Time) domain.Statistics {
	var stats domain.Statistics
	if len(records) == 0 {
		return stats
	}

	year, month, _ := now.Date()
	var totalHours float64
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, r := range records {
		stats.Revenue += r.Fare
		totalHours += r.Duration().Hours()

		if _, seen := counts[r.LicensePlate]; !seen {
			order = append(order, r.LicensePlate)
		}
		counts[r.LicensePlate]++

		ry, rm, _ := r.EntryTime.In(now.Location()).Date()
		if ry != year || rm != month {
			continue
		}
		stats.TotalParkings++
		switch r.VehicleType {
		case domain.VehicleBike:
			stats.BikeCount++
		case domain.VehicleCar:
			stats.CarCount++
		}
	}

	stats.AvgDurationHours = math.Round(totalHours/float64(len(records))*10) / 10

	// Only a strictly greater count replaces the leader, so ties go to the
	// plate seen first.
	for _, plate := range order {
		if counts[plate] > stats.MostRepeatedPlate.Count {
			stats.MostRepeatedPlate = domain.PlateCount{Plate: plate, Count: counts[plate]}
		}
	}
	return stats
}
