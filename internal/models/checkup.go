package models

import "time"

type Checkup struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint `gorm:"not null;index" json:"patient_id"`
	Patient   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// Date references DailySlot.Date, a recurring time-of-day label.
	Date string `gorm:"size:10;not null;index" json:"date"`

	Type string `gorm:"size:20;not null;default:'EXAMINATION'" json:"type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
