package models

import "time"

// Jewel is one lendable inventory line; Count is the number of units on the shelf.
type Jewel struct {
	ID            uint    `gorm:"primaryKey"`
	Name          string  `gorm:"size:100;not null"`
	Category      string  `gorm:"size:50"`
	Description   string  `gorm:"type:text"`
	ImageFilename *string `gorm:"size:200"`
	PricePerHour  float64 `gorm:"not null;default:0"`
	FinePerHour   float64 `gorm:"not null;default:0"`
	Count         int     `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (j *Jewel) Image() string {
	if j.ImageFilename == nil {
		return ""
	}
	return *j.ImageFilename
}
