package models

type News struct {
	BaseModel

	UserID uint   `gorm:"not null;index" json:"user_id"`
	Title  string `gorm:"not null" json:"title"`
	Text   string `gorm:"type:text;not null" json:"text"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
