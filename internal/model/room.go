package model

import "time"

// Room is a located space on a map. Area is a nullable reference; the
// database does not enforce it, the store layer does.
type Room struct {
	ID          string    `gorm:"primaryKey;size:10" json:"id"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Area        *int64    `gorm:"index" json:"area"`
	X           int       `gorm:"not null" json:"x"`
	Y           int       `gorm:"not null" json:"y"`
	Floor       *int      `json:"floor"`
	RoomName    string    `gorm:"size:50;not null" json:"room_name"`
	MapCode     string    `gorm:"size:50;not null;index" json:"map_code"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
