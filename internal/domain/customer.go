package domain

import "time"

type Customer struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	FullName    string    `json:"fullName" gorm:"not null;index"`
	Phone       string    `json:"phone" gorm:"size:32;not null;uniqueIndex"`
	Email       string    `json:"email,omitempty"`
	IDNumber    string    `json:"idNumber,omitempty" gorm:"size:64;index"`
	Nationality string    `json:"nationality,omitempty" gorm:"size:64"`
	Address     string    `json:"address,omitempty"`
	CompanyName string    `json:"companyName,omitempty"`
	Notes       string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
