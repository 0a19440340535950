package models

import "time"

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
	StatusReturned RequestStatus = "returned"
)

// BorrowRequest reserves one unit of a jewel for [StartTime, EndTime).
// JewelID becomes NULL when the jewel is deleted after the request is settled.
type BorrowRequest struct {
	ID               uint          `gorm:"primaryKey"`
	UserID           uint          `gorm:"index;not null"`
	User             User          `gorm:"constraint:OnDelete:RESTRICT"`
	JewelID          *uint         `gorm:"index"`
	Jewel            *Jewel        `gorm:"constraint:OnDelete:SET NULL"`
	StartTime        time.Time     `gorm:"not null"`
	EndTime          time.Time     `gorm:"not null"`
	Status           RequestStatus `gorm:"size:20;not null;default:pending;index"`
	CalculatedAmount float64       `gorm:"not null;default:0"`
	FineAmount       float64       `gorm:"not null;default:0"`
	Notes            string        `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (r *BorrowRequest) JewelName() string {
	if r.Jewel == nil {
		return "(deleted jewel)"
	}
	return r.Jewel.Name
}
