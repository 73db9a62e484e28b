package service

import (
	"fmt"
	"parking_tracker/internal/domain"
)

const DefaultBikeSpotEvery = 3

// GenerateSpots builds the fixed spot population: one spot per (floor,
// sequence), sequence starting at 1. Every bikeEvery-th sequence is a bike
// spot, the rest are car spots. bikeEvery <= 0 means no bike spots.
func GenerateSpots(floors []string, spotsPerFloor, bikeEvery int) []domain.Spot {
	spots := make([]domain.Spot, 0, len(floors)*spotsPerFloor)
	for _, floor := range floors {
		for i := 1; i <= spotsPerFloor; i++ {
			spotType := domain.VehicleCar
			if bikeEvery > 0 && i%bikeEvery == 0 {
				spotType = domain.VehicleBike
			}
			spots = append(spots, domain.Spot{
				ID:     fmt.Sprintf("%s-%02d", floor, i),
				Floor:  floor,
				Type:   spotType,
				Status: domain.SpotAvailable,
			})
		}
	}
	return spots
}
