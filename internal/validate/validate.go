// Package validate holds the pure field-level validators for every entity
// kind. Validators never touch storage; they consume decoded payloads and
// return a list of human-readable messages, empty on success. A non-empty
// list is a hard rejection and callers must not apply any part of the
// payload.
package validate

import (
	"regexp"
	"strings"

	"active-rooms-backend/internal/model"
	"active-rooms-backend/internal/patch"
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Coordinate bounds of the map canvas, in pixels.
const (
	MaxX = 800
	MaxY = 600
)

// SensorPayload is a decoded sensor create or update body.
type SensorPayload struct {
	ID     patch.String `json:"id"`
	X      patch.Int    `json:"x"`
	Y      patch.Int    `json:"y"`
	Status patch.String `json:"status"`
	RoomID patch.String `json:"room_id"`
}

// Sensor checks a sensor payload. With isUpdate set, absent fields are
// allowed; present fields are always checked.
func Sensor(p SensorPayload, isUpdate bool) []string {
	var errs []string

	if p.ID.Present && !p.ID.Null {
		switch {
		case strings.TrimSpace(p.ID.Value) == "":
			errs = append(errs, "ID must be a non-empty string")
		case len(p.ID.Value) > 50:
			errs = append(errs, "ID must be 50 characters or less")
		case !idPattern.MatchString(p.ID.Value):
			errs = append(errs, "ID can only contain letters, numbers, underscores, and hyphens")
		}
	} else if !isUpdate {
		errs = append(errs, "ID is required")
	}

	if p.X.Present {
		if p.X.Null || !p.X.Valid {
			errs = append(errs, "X coordinate must be a valid number")
		} else if p.X.Value < 0 || p.X.Value > MaxX {
			errs = append(errs, "X coordinate must be between 0 and 800")
		}
	} else if !isUpdate {
		errs = append(errs, "X coordinate is required")
	}

	if p.Y.Present {
		if p.Y.Null || !p.Y.Valid {
			errs = append(errs, "Y coordinate must be a valid number")
		} else if p.Y.Value < 0 || p.Y.Value > MaxY {
			errs = append(errs, "Y coordinate must be between 0 and 600")
		}
	} else if !isUpdate {
		errs = append(errs, "Y coordinate is required")
	}

	if p.Status.Present && !validStatus(p.Status) {
		errs = append(errs, "Status must be one of: available, occupied, error")
	}

	if p.RoomID.Present && !p.RoomID.Null && p.RoomID.Value != "" {
		if len(p.RoomID.Value) > 10 {
			errs = append(errs, "Room ID must be a string with 10 characters or less")
		}
	}

	return errs
}

func validStatus(s patch.String) bool {
	if s.Null {
		return false
	}
	switch s.Value {
	case model.SensorStatusAvailable, model.SensorStatusOccupied, model.SensorStatusError:
		return true
	}
	return false
}

// RoomCreatePayload is a decoded room creation body.
type RoomCreatePayload struct {
	ID          patch.String `json:"id"`
	Description patch.String `json:"description"`
	RoomNumber  patch.String `json:"room_number"`
	X           patch.Int    `json:"x"`
	Y           patch.Int    `json:"y"`
	Floor       patch.Int    `json:"floor"`
	AreaID      patch.Int64  `json:"area_id"`
	MapCode     patch.String `json:"map_code"`
}

// RoomCreate checks the full set of creation rules: every required field
// must be present, optional fields are checked when sent.
func RoomCreate(p RoomCreatePayload) []string {
	var errs []string

	if !p.ID.Present || p.ID.Null || strings.TrimSpace(p.ID.Value) == "" {
		errs = append(errs, "Room ID is required and must be a non-empty string")
	} else if len(p.ID.Value) > 10 {
		errs = append(errs, "Room ID must be 10 characters or less")
	}

	if !p.Description.Present || p.Description.Null ||
		len(p.Description.Value) < 2 || len(p.Description.Value) > 255 {
		errs = append(errs, "Description is required (2-255 chars)")
	}

	if !p.RoomNumber.Present || p.RoomNumber.Null || !numeric(p.RoomNumber.Value) {
		errs = append(errs, "Room number is required and must be a number")
	}

	if !p.X.Present || !p.Y.Present || p.X.Null || p.Y.Null || !p.X.Valid || !p.Y.Valid {
		errs = append(errs, "x and y coordinates are required and must be numbers")
	} else if p.X.Value < 0 || p.X.Value > MaxX || p.Y.Value < 0 || p.Y.Value > MaxY {
		errs = append(errs, "Coordinates must be within map bounds (x: 0-800, y: 0-600)")
	}

	if p.Floor.Present && !p.Floor.Null {
		if !p.Floor.Valid || p.Floor.Value < 0 || p.Floor.Value > 100 {
			errs = append(errs, "Floor must be a valid number")
		}
	}

	if p.AreaID.Present && !p.AreaID.Null && !p.AreaID.Valid {
		errs = append(errs, "Area ID must be a valid number")
	}

	if !p.MapCode.Present || p.MapCode.Null || strings.TrimSpace(p.MapCode.Value) == "" {
		errs = append(errs, "Map code is required")
	}

	return errs
}

// RoomUpdatePayload is a decoded room partial-update body. Absent fields
// are left untouched by the caller; null or empty Area and Floor clear the
// stored value.
type RoomUpdatePayload struct {
	Description patch.String `json:"description"`
	Area        patch.Int64  `json:"area"`
	X           patch.Int    `json:"x"`
	Y           patch.Int    `json:"y"`
	Floor       patch.Int    `json:"floor"`
	RoomName    patch.String `json:"room_name"`
	MapCode     patch.String `json:"map_code"`
}

// RoomUpdate checks the generic room rules against a partial update. The id
// comes from the URL, not the body.
func RoomUpdate(id string, p RoomUpdatePayload) []string {
	var errs []string

	if strings.TrimSpace(id) == "" {
		errs = append(errs, "Room ID is required and must be a non-empty string")
	} else if len(id) > 10 {
		errs = append(errs, "Room ID must be 10 characters or less")
	}

	if p.Description.Present && !p.Description.Null && len(p.Description.Value) > 255 {
		errs = append(errs, "Description must be a string with 255 characters or less")
	}

	if p.Area.Present && !p.Area.Null && (!p.Area.Valid || p.Area.Value < 1) {
		errs = append(errs, "Area must be a valid positive integer (area ID)")
	}

	return errs
}

// AreaPayload is a decoded area create or update body.
type AreaPayload struct {
	ID          patch.Int64  `json:"id"`
	Name        patch.String `json:"name"`
	Description patch.String `json:"description"`
	MapCode     patch.String `json:"map_code"`
}

// Area checks an area payload. The map code is required only on create; an
// update never moves an area between maps.
func Area(p AreaPayload, isCreate bool) []string {
	var errs []string

	name := strings.TrimSpace(p.Name.Value)
	if !p.Name.Present || p.Name.Null || len(name) < 2 || len(p.Name.Value) > 100 {
		errs = append(errs, "Name is required (2-100 chars)")
	}

	if p.Description.Present && !p.Description.Null && len(p.Description.Value) > 255 {
		errs = append(errs, "Description must be 255 chars or less")
	}

	if p.ID.Present && !p.ID.Null {
		if !p.ID.Valid {
			errs = append(errs, "ID must be a valid number")
		} else if p.ID.Value > 9999999999 {
			errs = append(errs, "ID must be up to 10 chars")
		}
	}

	if isCreate && (!p.MapCode.Present || p.MapCode.Null || strings.TrimSpace(p.MapCode.Value) == "") {
		errs = append(errs, "map_code is required")
	}

	return errs
}

// Credentials checks a login payload.
func Credentials(username, password string) []string {
	var errs []string

	switch {
	case strings.TrimSpace(username) == "":
		errs = append(errs, "Username is required and must be a non-empty string")
	case len(username) > 50:
		errs = append(errs, "Username must be 50 characters or less")
	case !idPattern.MatchString(username):
		errs = append(errs, "Username can only contain letters, numbers, underscores, and hyphens")
	}

	switch {
	case len(password) < 3:
		errs = append(errs, "Password must be at least 3 characters long")
	case len(password) > 255:
		errs = append(errs, "Password must be 255 characters or less")
	}

	return errs
}

func numeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
