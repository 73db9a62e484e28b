package domain

type PlateCount struct {
	Plate string `json:"plate"`
	Count int    `json:"count"`
}

// Statistics is recomputed from the history ledger on every request.
//
// Revenue, AvgDurationHours and MostRepeatedPlate cover the entire history.
// TotalParkings, BikeCount and CarCount cover only sessions that entered in
// the current calendar month, even though dashboards tend to label revenue as
// "this month" too.
type Statistics struct {
	Revenue           int64      `json:"revenue"`
	TotalParkings     int        `json:"total_parkings"`
	BikeCount         int        `json:"bike_count"`
	CarCount          int        `json:"car_count"`
	AvgDurationHours  float64    `json:"avg_duration_hours"`
	MostRepeatedPlate PlateCount `json:"most_repeated_plate"`
}
