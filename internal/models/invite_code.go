package models

import "time"

// InviteCode pre-authorises a privilege role, ministry, and family grouping at
// registration time. A code is single use: UsedByID transitions nil -> set
// exactly once and never reverts. Codes are soft-deactivated, never deleted.
type InviteCode struct {
	BaseModel

	Code        string  `gorm:"uniqueIndex;not null" json:"code"`
	Role        string  `gorm:"type:varchar(32);not null" json:"role"`
	Ministry    string  `gorm:"type:varchar(128)" json:"ministry"`
	FamilyID    *string `gorm:"type:uuid" json:"family_id"`
	Description string  `gorm:"type:text" json:"description"`

	CreatedByID string `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedBy   *User  `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`

	UsedByID *string `gorm:"type:uuid" json:"used_by_id"`
	UsedBy   *User   `gorm:"foreignKey:UsedByID" json:"used_by,omitempty"`

	ExpiresAt *time.Time `gorm:"index" json:"expires_at"`
	IsActive  bool       `gorm:"default:true;index" json:"is_active"`
}

// Expired reports whether the code's expiry is set and in the past.
func (c *InviteCode) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}
