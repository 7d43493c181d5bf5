package models

type Role struct {
	BaseModel

	Title string `gorm:"not null" json:"title"`
}
