package model

import "time"

// Zone is the map record: one row per uploaded floor plan, keyed by the
// map code that scopes every area, room and sensor placed on it.
type Zone struct {
	MapCode   string    `gorm:"primaryKey;size:50" json:"map_code"`
	Path      string    `gorm:"size:255;not null" json:"path"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
