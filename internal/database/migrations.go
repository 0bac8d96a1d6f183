package database

import (
	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.InviteCode{},
		&models.Post{},
		&models.PostComment{},
		&models.Event{},
		&models.EventAttendee{},
		&models.PrayerEntry{},
		&models.Notification{},
		&models.MentorshipRequest{},
		&models.MentorshipMessage{},
		&models.SpiritualLog{},
	)
}
