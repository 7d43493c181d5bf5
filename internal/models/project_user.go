package models

// ProjectUser is a membership row. The composite unique index backs up the
// validation pre-check, since check-then-insert is not atomic.
type ProjectUser struct {
	BaseModel

	UserID    uint `gorm:"not null;uniqueIndex:idx_project_user" json:"user_id"`
	ProjectID uint `gorm:"not null;uniqueIndex:idx_project_user" json:"project_id"`

	// Relationships
	User    *User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (ProjectUser) TableName() string {
	return "project_user"
}
