package store

// Dependents reports the number of rows scoped to one map code, one count
// per table. Zones is 0 or 1 since the map code is the zone's primary key,
// but it is reported as a count like the others.
type Dependents struct {
	Rooms   int64 `json:"rooms"`
	Areas   int64 `json:"areas"`
	Sensors int64 `json:"sensors"`
	Zones   int64 `json:"zones"`
}

// Total is the number of dependent rows across all tables.
func (d Dependents) Total() int64 {
	return d.Rooms + d.Areas + d.Sensors + d.Zones
}

// RoomView is a room row joined with its area name.
type RoomView struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Area        *int64  `json:"area"`
	X           int     `json:"x"`
	Y           int     `json:"y"`
	Floor       *int    `json:"floor"`
	RoomName    string  `json:"room_name"`
	MapCode     string  `json:"map_code"`
	AreaName    *string `json:"area_name"`
}

// SensorView is a sensor row joined with its room description and area name.
type SensorView struct {
	ID              string  `json:"id"`
	X               int     `json:"x"`
	Y               int     `json:"y"`
	RoomID          *string `json:"room_id"`
	Status          string  `json:"status"`
	MapCode         string  `json:"map_code"`
	RoomDescription *string `json:"room_description"`
	AreaName        *string `json:"area_name"`
}

// RoomNumberKey is the composite scope inside which room numbers must be
// unique. A nil Area matches only arealess rooms; a nil Floor leaves the
// floor out of the comparison entirely, matching any floor.
type RoomNumberKey struct {
	RoomName string
	Floor    *int
	Area     *int64
	MapCode  string
}

// RoomPatch is a partial room update. A nil pointer leaves the column
// untouched; AreaSet and FloorSet distinguish "leave alone" from "clear",
// since clearing is expressed as a set field with a nil value.
type RoomPatch struct {
	Description *string
	AreaSet     bool
	Area        *int64
	X           *int
	Y           *int
	FloorSet    bool
	Floor       *int
	RoomName    *string
}

// Empty reports whether the patch touches no columns.
func (p RoomPatch) Empty() bool {
	return p.Description == nil && !p.AreaSet && p.X == nil && p.Y == nil &&
		!p.FloorSet && p.RoomName == nil
}

// SensorPatch is a partial sensor update. RoomIDSet with a nil RoomID
// detaches the sensor from its room.
type SensorPatch struct {
	X         *int
	Y         *int
	Status    *string
	RoomIDSet bool
	RoomID    *string
}

// Empty reports whether the patch touches no columns.
func (p SensorPatch) Empty() bool {
	return p.X == nil && p.Y == nil && p.Status == nil && !p.RoomIDSet
}
