package models

import "time"

// SpiritualLog records a member's daily spiritual habits. Date is normalised
// to midnight UTC; one row per user per day.
type SpiritualLog struct {
	BaseModel

	UserID string    `gorm:"type:uuid;not null;uniqueIndex:idx_spiritual_log_day" json:"user_id"`
	Date   time.Time `gorm:"not null;uniqueIndex:idx_spiritual_log_day" json:"date"`

	PrayerMinutes       int    `gorm:"default:0" json:"prayer_minutes"`
	BibleReadingMinutes int    `gorm:"default:0" json:"bible_reading_minutes"`
	DevotionMinutes     int    `gorm:"default:0" json:"devotion_minutes"`
	Notes               string `gorm:"size:1000" json:"notes"`
}
