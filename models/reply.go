package models

import "time"

// Reply is a supportive response attached to one post. Like posts, replies
// are immutable and carry no author information of any kind.
type Reply struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	PostID    string     `gorm:"index;size:36;not null" json:"post_id"`
	Text      string     `gorm:"type:text;not null" json:"text"`
	CreatedAt *time.Time `gorm:"index;autoCreateTime:false" json:"created_at"`
}
