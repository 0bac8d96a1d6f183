package models

import (
	"time"

	"gorm.io/datatypes"
)

// Prayer entry types.
const (
	PrayerTypePersonal     = "personal"
	PrayerTypeIntercession = "intercession"
	PrayerTypeThanksgiving = "thanksgiving"
	PrayerTypeRequest      = "request"
)

// PrayerTypes lists the accepted prayer entry type values.
var PrayerTypes = []string{PrayerTypePersonal, PrayerTypeIntercession, PrayerTypeThanksgiving, PrayerTypeRequest}

// PrayerEntry is a private journal record owned by exactly one user. CreatedAt
// is the time axis for all statistics and never changes after creation.
// IsAnswered transitions Unanswered -> Answered once; no reverse transition is
// exposed.
type PrayerEntry struct {
	BaseModel

	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID" json:"-"`

	Type        string `gorm:"type:varchar(32);not null;index" json:"type"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"size:1000;not null" json:"description"`

	// Duration is the prayer time in whole minutes, at least 1.
	Duration int `gorm:"not null" json:"duration"`

	IsAnswered          bool       `gorm:"default:false;index" json:"is_answered"`
	AnsweredDate        *time.Time `json:"answered_date"`
	AnsweredDescription string     `gorm:"size:500" json:"answered_description"`

	Tags datatypes.JSON `json:"tags"`

	IsPrivate bool `gorm:"default:true" json:"is_private"`
}
