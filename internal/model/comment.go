package model

import "time"

// Comment is a reply attached to a review.
type Comment struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	ReviewID uint      `json:"-" gorm:"not null;index"`
	AuthorID uint      `json:"-" gorm:"not null;index"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	PubDate  time.Time `json:"pub_date" gorm:"not null;autoCreateTime;index"`

	Review Review `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Author User   `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}
