package model

import "time"

// Area is a named grouping of rooms within one map.
type Area struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description *string   `gorm:"size:255" json:"description"`
	MapCode     string    `gorm:"size:50;not null;index" json:"map_code"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
