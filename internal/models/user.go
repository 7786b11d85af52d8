package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`

	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	PhoneNumber string `gorm:"size:20" json:"phone_number"`
	Address     string `gorm:"size:255" json:"address"`

	Role string `gorm:"size:20;not null;default:'PATIENT';index" json:"role"`

	ProfileImage    string `gorm:"size:255" json:"profile_image"`
	ProfileImageKey string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
