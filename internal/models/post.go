package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a publication. Author and creation timestamp are
// server-assigned at creation and never change afterwards.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	ImageURL string `json:"image_url,omitempty"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	// GroupID is optional. Removing the referenced group clears the
	// reference; the post survives.
	GroupID   *uint          `gorm:"index" json:"group_id"`
	Group     *Group         `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"group,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
