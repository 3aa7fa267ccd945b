package model

// Student is a registered participant. AccessID is the human-readable
// credential (e.g. CHS-2026-A9B2) a student enters to start an assessment;
// uniqueness is guaranteed at generation time, before rows reach scoring.
// swagger:model Student
type Student struct {
	BaseModel
	SchoolID uint    `gorm:"index;not null" json:"schoolId"`
	Name     string  `gorm:"size:100;not null" json:"name"`
	AccessID string  `gorm:"size:30;uniqueIndex;not null" json:"accessId"`
	Class    string  `gorm:"size:20;index" json:"class"`
	Section  string  `gorm:"size:10" json:"section"`
	School   *School `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
}

func (Student) TableName() string {
	return "students"
}
