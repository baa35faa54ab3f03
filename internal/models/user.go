// Package models contains data structures for the application's domain models.
package models

import "time"

// User is a registered identity able to authenticate and author posts.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:250;not null" json:"username"`
	Email     string    `gorm:"size:250;unique;not null" json:"email"`
	Password  string    `gorm:"size:250;not null" json:"-"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Posts     []Post    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
}
