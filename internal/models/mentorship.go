package models

import (
	"time"

	"gorm.io/datatypes"
)

// Mentorship request topics.
var MentorshipTopics = []string{
	"Spiritual Growth",
	"Academic Guidance",
	"Career",
	"Relationships",
	"Mental Health",
	"Other",
}

// Mentorship request statuses.
const (
	MentorshipStatusPending   = "pending"
	MentorshipStatusAccepted  = "accepted"
	MentorshipStatusDeclined  = "declined"
	MentorshipStatusScheduled = "scheduled"
	MentorshipStatusCompleted = "completed"
)

// MentorshipRequest is a member's request for mentorship or counseling,
// optionally anonymous, handled by a leader through a small status workflow.
type MentorshipRequest struct {
	BaseModel

	RequesterID string `gorm:"type:uuid;not null;index" json:"requester_id"`
	Requester   *User  `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	IsAnonymous bool   `gorm:"default:false" json:"is_anonymous"`

	Topic   string `gorm:"type:varchar(64);not null" json:"topic"`
	Details string `gorm:"size:3000" json:"details"`

	PreferredTimes datatypes.JSON `json:"preferred_times"`

	Status string `gorm:"type:varchar(32);default:'pending';index" json:"status"`

	AssignedLeaderID *string    `gorm:"type:uuid" json:"assigned_leader_id"`
	AssignedLeader   *User      `gorm:"foreignKey:AssignedLeaderID" json:"assigned_leader,omitempty"`
	ScheduledAt      *time.Time `json:"scheduled_at"`

	Messages []MentorshipMessage `gorm:"foreignKey:RequestID" json:"messages,omitempty"`

	IsActive bool `gorm:"default:true" json:"is_active"`
}

// MentorshipMessage is one entry in the private thread between requester and
// assigned leader.
type MentorshipMessage struct {
	BaseModel

	RequestID string `gorm:"type:uuid;not null;index" json:"request_id"`
	SenderID  string `gorm:"type:uuid;not null" json:"sender_id"`
	Sender    *User  `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Content   string `gorm:"size:3000;not null" json:"content"`
}
