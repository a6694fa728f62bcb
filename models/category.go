package models

// Category is a read-mostly label referenced by posts.
type Category struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:64;not null;uniqueIndex" json:"name"`
}

// TableName keeps the legacy singular table name.
func (Category) TableName() string { return "category" }
