package services

import "time"

// Hours is d expressed in fractional hours.
func Hours(d time.Duration) float64 { return d.Seconds() / 3600 }

// RentalCost is the amount charged for borrowing from start to end.
func RentalCost(start, end time.Time, pricePerHour float64) float64 {
	return Hours(end.Sub(start)) * pricePerHour
}

// OverdueFine is what a return at now owes past end. It is 0 unless now is after end.
func OverdueFine(end, now time.Time, finePerHour float64) float64 {
	if !now.After(end) {
		return 0
	}
	return Hours(now.Sub(end)) * finePerHour
}
