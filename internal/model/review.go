package model

import "time"

// Review is a user's scored opinion of a title. One per (author, title).
type Review struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	TitleID  uint      `json:"-" gorm:"not null;uniqueIndex:idx_reviews_author_title,priority:2"`
	AuthorID uint      `json:"-" gorm:"not null;uniqueIndex:idx_reviews_author_title,priority:1"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	Score    int       `json:"score" gorm:"not null;check:chk_reviews_score,score >= 1 AND score <= 10"`
	PubDate  time.Time `json:"pub_date" gorm:"not null;autoCreateTime;index"`

	Title  Title `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Author User  `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}
