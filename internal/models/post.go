// Package models contains data structures for the application's domain models.
package models

import "time"

// Post is a published blog entry owned by exactly one User.
type Post struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"user"`

	Title    string `gorm:"size:250;unique;not null" json:"title"`
	Subtitle string `gorm:"size:250;not null" json:"subtitle"`
	// Date is the human-readable publication date, stamped once at
	// creation and never recomputed.
	Date     string `gorm:"size:250;not null" json:"date"`
	Body     string `gorm:"type:text;not null" json:"body"`
	ImageURL string `gorm:"size:250" json:"img_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
