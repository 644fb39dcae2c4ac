package model

// AreaRoom is the denormalized association row mirroring a room's current
// area assignment and name. It exists only while the room has a non-null
// area and is written exclusively by the store's sync logic, never by a
// client.
type AreaRoom struct {
	RoomID   string `gorm:"primaryKey;size:10" json:"room_id"`
	AreaID   int64  `gorm:"not null;index" json:"area_id"`
	RoomName string `gorm:"size:50;not null" json:"room_name"`
}
