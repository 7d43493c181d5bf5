package models

type User struct {
	BaseModel

	Username   string `gorm:"uniqueIndex;not null" json:"username"`
	FirstName  string `gorm:"not null" json:"first_name"`
	LastName   string `gorm:"not null" json:"last_name"`
	Password   string `gorm:"not null" json:"-"`
	Permission bool   `gorm:"not null;default:false" json:"permission"`
	RoleID     uint   `gorm:"not null;index" json:"-"`
	Picture    string `json:"picture"`
	Expertise  string `json:"expertise"`

	// Relationships
	Role         *Role         `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Memberships  []ProjectUser `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Timelogs     []Timelog     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	News         []News        `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	AccessTokens []AccessToken `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
