package models

import "time"

// Post is a single anonymous vent on the public forum. Posts are immutable
// once created and are never deleted.
type Post struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	Text      string     `gorm:"type:text;not null" json:"text"`
	CreatedAt *time.Time `gorm:"index;autoCreateTime:false" json:"created_at"`
	Replies   []Reply    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"replies,omitempty"`
}
