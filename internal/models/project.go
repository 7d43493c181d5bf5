package models

type Project struct {
	BaseModel

	Name string `gorm:"not null" json:"name"`
	// Nullable so the manager's user row can be deleted without
	// taking the project with it.
	ProjectManagerID *uint `gorm:"index" json:"project_manager_id"`

	// Relationships
	Manager     *User         `gorm:"foreignKey:ProjectManagerID;constraint:OnUpdate:Cascade,OnDelete:SET NULL" json:"-"`
	Memberships []ProjectUser `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Timelogs    []Timelog     `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
