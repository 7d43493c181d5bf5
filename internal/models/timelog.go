package models

type Timelog struct {
	BaseModel

	UserID    uint `gorm:"not null;index" json:"user_id"`
	ProjectID uint `gorm:"not null;index" json:"project_id"`
	// Stored in the validated wire formats: Y-m-d and H:i.
	Date         string `gorm:"not null" json:"date"`
	Time         string `gorm:"not null" json:"time"`
	Contribution string `gorm:"type:text;not null" json:"contribution"`

	// Relationships
	User    *User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
