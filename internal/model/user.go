package model

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleSchool UserRole = "school"
	// RoleAccess is carried in student JWTs issued against an access ID;
	// no User row exists for students.
	RoleAccess UserRole = "student"
)

// User is a login account for the admin console or a school dashboard.
// Students authenticate with their access ID instead (see Student).
// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('admin','school');default:'school'" json:"role"`
	SchoolID  *uint     `gorm:"index" json:"schoolId,omitempty"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
