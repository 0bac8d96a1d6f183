package models

import "time"

// Notification types.
const (
	NotificationTypeLike                = "like"
	NotificationTypeComment             = "comment"
	NotificationTypePrayer              = "prayer"
	NotificationTypeRSVP                = "rsvp"
	NotificationTypeNewPost             = "new_post"
	NotificationTypeNewEvent            = "new_event"
	NotificationTypeEventReminder       = "event_reminder"
	NotificationTypeMentorshipSubmitted = "mentorship_submitted"
	NotificationTypeMentorshipUpdated   = "mentorship_updated"
	NotificationTypeMentorshipMessage   = "mentorship_message"
)

// Notification represents an in-app notification delivered to a single
// recipient.
type Notification struct {
	BaseModel

	RecipientID string `gorm:"type:uuid;not null;index" json:"recipient_id"`
	SenderID    string `gorm:"type:uuid;not null" json:"sender_id"`
	Sender      *User  `gorm:"foreignKey:SenderID" json:"sender,omitempty"`

	Type    string `gorm:"type:varchar(64);not null;index" json:"type"`
	Message string `gorm:"type:text;not null" json:"message"`

	RelatedPostID  *string `gorm:"type:uuid" json:"related_post_id,omitempty"`
	RelatedPost    *Post   `gorm:"foreignKey:RelatedPostID" json:"related_post,omitempty"`
	RelatedEventID *string `gorm:"type:uuid" json:"related_event_id,omitempty"`
	RelatedEvent   *Event  `gorm:"foreignKey:RelatedEventID" json:"related_event,omitempty"`

	IsRead bool       `gorm:"default:false;index" json:"is_read"`
	ReadAt *time.Time `json:"read_at"`
}
