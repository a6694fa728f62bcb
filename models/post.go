package models

import "time"

// Post represents a board entry. The password is stored as a one-way hash
// and is never returned to callers.
type Post struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID   int64     `gorm:"column:category_id;index;not null" json:"category_id"`
	Title        string    `gorm:"size:1000;not null" json:"title"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	Author       string    `gorm:"size:10;not null" json:"author"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	Views        int64     `gorm:"not null;default:0" json:"views"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	EditedAt     time.Time `gorm:"column:edited_at;autoUpdateTime" json:"edited_at"`

	Category    Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Comments    []Comment    `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:PostID" json:"attachments,omitempty"`
}

// TableName keeps the legacy singular table name.
func (Post) TableName() string { return "post" }
