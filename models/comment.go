package models

import "time"

// Comment represents a reply to a post. Comments are removed together with
// their post.
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    int64     `gorm:"column:post_id;index;not null" json:"post_id"`
	Text      string    `gorm:"column:text;size:300;not null" json:"text"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	EditedAt  time.Time `gorm:"column:edited_at;autoUpdateTime" json:"edited_at"`
}

// TableName keeps the legacy singular table name.
func (Comment) TableName() string { return "comment" }
