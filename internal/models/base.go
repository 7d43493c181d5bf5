package models

import "time"

// BaseModel replaces gorm.Model so timestamps stay out of API responses
// and deletes are hard deletes (no DeletedAt column).
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
