package models

import (
	"strings"

	"gorm.io/gorm"
)

// Post types shared across the feed.
const (
	PostTypePrayer       = "prayer"
	PostTypeTestimony    = "testimony"
	PostTypeAnnouncement = "announcement"
	PostTypeCelebration  = "celebration"
)

// PostTypes lists the accepted post type values.
var PostTypes = []string{PostTypePrayer, PostTypeTestimony, PostTypeAnnouncement, PostTypeCelebration}

// Post is a feed entry: a prayer request, testimony, announcement, or
// celebration. Reaction collections are identifier sets; posts are
// soft-deleted via IsActive.
type Post struct {
	BaseModel

	Title   string `gorm:"size:200;not null" json:"title"`
	Content string `gorm:"size:2000;not null" json:"content"`
	Type    string `gorm:"type:varchar(32);not null;index" json:"type"`

	TestimonyCategory   string `gorm:"type:varchar(32)" json:"testimony_category,omitempty"`
	CelebrationCategory string `gorm:"type:varchar(32)" json:"celebration_category,omitempty"`

	AuthorID    string `gorm:"type:uuid;not null;index" json:"author_id"`
	Author      *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	IsAnonymous bool   `gorm:"default:false" json:"is_anonymous"`

	Likes     IDSet `json:"likes"`
	PrayedFor IDSet `json:"prayed_for"`
	Amens     IDSet `json:"amens"`
	Blessings IDSet `json:"blessings"`
	Congrats  IDSet `json:"congrats"`
	Hearts    IDSet `json:"hearts"`

	Comments []PostComment `gorm:"foreignKey:PostID" json:"comments,omitempty"`

	MediaURL string `gorm:"type:text" json:"media_url"`

	// SearchText aggregates the searchable fields, lowercased, and is
	// refreshed on every save.
	SearchText string `gorm:"type:text;index" json:"-"`

	IsActive  bool `gorm:"default:true;index" json:"is_active"`
	IsFlagged bool `gorm:"default:false" json:"is_flagged"`
}

// BeforeSave keeps the aggregated search text in sync with the post fields.
func (p *Post) BeforeSave(tx *gorm.DB) error {
	parts := []string{p.Title, p.Content, p.TestimonyCategory, p.CelebrationCategory}
	p.SearchText = strings.ToLower(strings.TrimSpace(strings.Join(parts, " ")))
	return nil
}

// PostComment is a comment attached to a post.
type PostComment struct {
	BaseModel

	PostID  string `gorm:"type:uuid;not null;index" json:"post_id"`
	UserID  string `gorm:"type:uuid;not null" json:"user_id"`
	User    *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content string `gorm:"size:1000;not null" json:"content"`
}
