package models

// User describes a fellowship member account.
type User struct {
	BaseModel

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Role is the privilege tier; FellowshipRole is a descriptive label such
	// as "Student" or "Graduate" chosen by the member.
	Role           string  `gorm:"type:varchar(32);default:'MEMBER';index" json:"role"`
	FellowshipRole string  `gorm:"type:varchar(64);default:'Member'" json:"fellowship_role"`
	Ministry       string  `gorm:"type:varchar(128)" json:"ministry"`
	FamilyID       *string `gorm:"type:uuid;index" json:"family_id"`

	Bio          string `gorm:"type:text" json:"bio"`
	ProfilePhoto string `gorm:"type:text" json:"profile_photo"`

	IsActive bool `gorm:"default:true" json:"is_active"`
}
