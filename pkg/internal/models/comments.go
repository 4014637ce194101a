package models

import "time"

type Comment struct {
	BaseModel

	Text string `json:"text" gorm:"type:text"`

	// PubDate is assigned once when the comment is created and never
	// touched afterwards.
	PubDate time.Time `json:"pub_date"`

	PostID uint `json:"post_id"`
	Post   Post `json:"post"`

	AuthorID uint    `json:"author_id"`
	Author   Account `json:"author"`
}
