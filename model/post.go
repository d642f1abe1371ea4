package model

import "time"

type Post struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title   string `gorm:"not null" json:"title"`
	Content string `gorm:"not null" json:"content"`

	// Storage key of the live image. Exactly one file is referenced at a
	// time, the previous one is retired when this changes
	ImagePath string `gorm:"not null" json:"imagePath"`

	AuthorID string `gorm:"index;not null" json:"-"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`

	// Managed by gorm, never settable by clients
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
