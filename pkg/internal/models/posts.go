package models

import (
	"time"

	"gorm.io/datatypes"
)

type Post struct {
	BaseModel

	Title    string `json:"title"`
	Text     string `json:"text" gorm:"type:text"`
	Language string `json:"language"`

	// PubDate may sit in the future; such posts stay out of public listings
	// until the moment elapses.
	PubDate     time.Time `json:"pub_date"`
	IsPublished bool      `json:"is_published"`

	Image       *string                     `json:"image"`
	Attachments datatypes.JSONSlice[string] `json:"attachments"`

	AuthorID uint    `json:"author_id"`
	Author   Account `json:"author"`

	CategoryID *uint     `json:"category_id"`
	Category   *Category `json:"category" gorm:"constraint:OnDelete:SET NULL"`

	LocationID *uint     `json:"location_id"`
	Location   *Location `json:"location" gorm:"constraint:OnDelete:SET NULL"`

	Comments []Comment `json:"comments" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`

	CommentCount int64 `json:"comment_count" gorm:"-"`
}
