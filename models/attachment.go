package models

import (
	"fmt"
	"time"
)

// Attachment records an uploaded file attached to a post. PhysicalName is the
// unique on-disk filename, never derived from the user-supplied original name.
type Attachment struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID       int64     `gorm:"column:post_id;index;not null" json:"post_id"`
	OriginalName string    `gorm:"column:original_name;size:255;not null" json:"original_name"`
	PhysicalName string    `gorm:"column:physical_name;size:64;not null;uniqueIndex" json:"physical_name"`
	Path         string    `gorm:"column:path;size:255;not null" json:"path"`
	Extension    string    `gorm:"column:extension;size:16;not null" json:"extension"`
	Size         int64     `gorm:"column:size;not null" json:"size"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	EditedAt     time.Time `gorm:"column:edited_at;autoUpdateTime" json:"edited_at"`
}

// TableName keeps the legacy singular table name.
func (Attachment) TableName() string { return "attachment" }

// HumanSize renders the byte size for display, e.g. "1.5 MB".
func (a Attachment) HumanSize() string {
	switch {
	case a.Size < 1024:
		return fmt.Sprintf("%d B", a.Size)
	case a.Size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(a.Size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(a.Size)/(1024*1024))
	}
}
