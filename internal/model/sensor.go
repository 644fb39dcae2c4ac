package model

import "time"

// Sensor statuses. Status is set manually through the UI, there is no
// telemetry path.
const (
	SensorStatusAvailable = "available"
	SensorStatusOccupied  = "occupied"
	SensorStatusError     = "error"
)

// Sensor is an occupancy point placed at map coordinates, optionally bound
// to a room.
type Sensor struct {
	ID        string    `gorm:"primaryKey;size:50" json:"id"`
	X         int       `gorm:"not null" json:"x"`
	Y         int       `gorm:"not null" json:"y"`
	RoomID    *string   `gorm:"size:10;index" json:"room_id"`
	Status    string    `gorm:"size:16;not null;default:available" json:"status"`
	MapCode   string    `gorm:"size:50;index" json:"map_code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
