package models

import (
	"time"
)

// Link maps a shortcut code to a target URL. The shortcut is immutable
// once created and unique across all users.
type Link struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Shortcut  string    `gorm:"unique;not null;size:20;index" json:"shortcut"`
	TargetURL string    `gorm:"column:link;not null;type:text" json:"link"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

func (Link) TableName() string {
	return "links"
}
