package model

// School is a registered institution whose students take assessments.
// Code is the human-readable identifier (JM-XXXX-YYYY) schools log in with.
// swagger:model School
type School struct {
	BaseModel
	Name         string `gorm:"size:255;not null" json:"name"`
	Code         string `gorm:"size:20;uniqueIndex;not null" json:"code"`
	ContactName  string `gorm:"size:100" json:"contactName"`
	ContactEmail string `gorm:"size:100" json:"contactEmail"`
	ContactPhone string `gorm:"size:20" json:"contactPhone"`
	City         string `gorm:"size:100" json:"city"`
	LogoURL      string `gorm:"size:255" json:"logoUrl"`
	Active       bool   `gorm:"default:true" json:"active"`
}

func (School) TableName() string {
	return "schools"
}
