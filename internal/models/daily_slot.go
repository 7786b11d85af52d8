package models

import "time"

// DailySlot is one bookable time of day ("06:00"). The pool is fixed at
// seeding time; bookings only flip Available.
type DailySlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date      string `gorm:"size:10;uniqueIndex;not null" json:"date"`
	Available bool   `gorm:"not null;default:true" json:"available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
