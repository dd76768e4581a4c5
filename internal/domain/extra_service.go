package domain

import "time"

// ExtraService is an entry of the services catalog (laundry, minibar, ...).
type ExtraService struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex"`
	Category    string    `json:"category" gorm:"size:64;index"`
	Price       float64   `json:"price" gorm:"not null"`
	Unit        string    `json:"unit,omitempty" gorm:"size:32"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	IsActive    bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
