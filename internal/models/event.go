package models

import "time"

// Event types.
const (
	EventTypeBibleStudy = "bible-study"
	EventTypeWorship    = "worship"
	EventTypeOutreach   = "outreach"
	EventTypeFellowship = "fellowship"
	EventTypePrayer     = "prayer"
	EventTypeOther      = "other"
)

// EventTypes lists the accepted event type values.
var EventTypes = []string{
	EventTypeBibleStudy,
	EventTypeWorship,
	EventTypeOutreach,
	EventTypeFellowship,
	EventTypePrayer,
	EventTypeOther,
}

// Event is a scheduled gathering members can RSVP to.
type Event struct {
	BaseModel

	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"size:1000;not null" json:"description"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Time        string    `gorm:"type:varchar(32);not null" json:"time"`
	Location    string    `gorm:"size:200;not null" json:"location"`

	OrganizerID string `gorm:"type:uuid;not null" json:"organizer_id"`
	Organizer   *User  `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`

	EventType    string `gorm:"type:varchar(32);default:'fellowship'" json:"event_type"`
	MaxAttendees *int   `json:"max_attendees"`
	ImageURL     string `gorm:"type:text" json:"image_url"`

	Attendees []EventAttendee `gorm:"foreignKey:EventID" json:"attendees,omitempty"`

	IsActive bool `gorm:"default:true;index" json:"is_active"`
}

// EventAttendee records a member's RSVP. A member may hold at most one RSVP
// per event.
type EventAttendee struct {
	BaseModel

	EventID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_event_attendee" json:"event_id"`
	UserID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_event_attendee" json:"user_id"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RSVPDate time.Time `json:"rsvp_date"`
}
