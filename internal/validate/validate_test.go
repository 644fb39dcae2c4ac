package validate

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSensor(t *testing.T, body string) SensorPayload {
	t.Helper()
	var p SensorPayload
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return p
}

func TestSensor(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		isUpdate bool
		expected []string
	}{
		{
			name:     "Valid create",
			body:     `{"id":"S001","x":100,"y":200,"status":"available"}`,
			expected: nil,
		},
		{
			name:     "Missing everything on create",
			body:     `{}`,
			expected: []string{"ID is required", "X coordinate is required", "Y coordinate is required"},
		},
		{
			name:     "Empty update body is fine",
			body:     `{}`,
			isUpdate: true,
			expected: nil,
		},
		{
			name:     "Bad id characters",
			body:     `{"id":"S 001","x":0,"y":0}`,
			expected: []string{"ID can only contain letters, numbers, underscores, and hyphens"},
		},
		{
			name:     "Id too long",
			body:     `{"id":"` + strings.Repeat("S", 51) + `","x":0,"y":0}`,
			expected: []string{"ID must be 50 characters or less"},
		},
		{
			name:     "X out of range",
			body:     `{"id":"S1","x":801,"y":0}`,
			expected: []string{"X coordinate must be between 0 and 800"},
		},
		{
			name:     "Negative Y",
			body:     `{"id":"S1","x":0,"y":-1}`,
			expected: []string{"Y coordinate must be between 0 and 600"},
		},
		{
			name:     "Non-numeric coordinate on update",
			body:     `{"x":"abc"}`,
			isUpdate: true,
			expected: []string{"X coordinate must be a valid number"},
		},
		{
			name:     "Bad status",
			body:     `{"status":"broken"}`,
			isUpdate: true,
			expected: []string{"Status must be one of: available, occupied, error"},
		},
		{
			name:     "Room id too long",
			body:     `{"room_id":"12345678901"}`,
			isUpdate: true,
			expected: []string{"Room ID must be a string with 10 characters or less"},
		},
		{
			name:     "Empty room id allowed, clears binding",
			body:     `{"room_id":""}`,
			isUpdate: true,
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			errs := Sensor(decodeSensor(t, tc.body), tc.isUpdate)
			assert.Equal(t, tc.expected, errs)
		})
	}
}

func TestRoomCreate(t *testing.T) {
	valid := `{"id":"101","description":"Physics lab","room_number":5,"x":100,"y":100,"floor":1,"map_code":"A"}`

	testCases := []struct {
		name     string
		body     string
		expected []string
	}{
		{
			name:     "Valid payload",
			body:     valid,
			expected: nil,
		},
		{
			name:     "Valid without optional floor and area",
			body:     `{"id":"102","description":"Store room","room_number":"6","x":0,"y":0,"map_code":"A"}`,
			expected: nil,
		},
		{
			name: "Missing id",
			body: `{"description":"Lab","room_number":5,"x":1,"y":1,"map_code":"A"}`,
			expected: []string{
				"Room ID is required and must be a non-empty string",
			},
		},
		{
			name:     "Id too long",
			body:     `{"id":"12345678901","description":"Lab","room_number":5,"x":1,"y":1,"map_code":"A"}`,
			expected: []string{"Room ID must be 10 characters or less"},
		},
		{
			name:     "Description too short",
			body:     `{"id":"101","description":"L","room_number":5,"x":1,"y":1,"map_code":"A"}`,
			expected: []string{"Description is required (2-255 chars)"},
		},
		{
			name:     "Room number not numeric",
			body:     `{"id":"101","description":"Lab","room_number":"5a","x":1,"y":1,"map_code":"A"}`,
			expected: []string{"Room number is required and must be a number"},
		},
		{
			name:     "X out of bounds",
			body:     `{"id":"101","description":"Lab","room_number":5,"x":801,"y":1,"map_code":"A"}`,
			expected: []string{"Coordinates must be within map bounds (x: 0-800, y: 0-600)"},
		},
		{
			name:     "Negative y",
			body:     `{"id":"101","description":"Lab","room_number":5,"x":1,"y":-1,"map_code":"A"}`,
			expected: []string{"Coordinates must be within map bounds (x: 0-800, y: 0-600)"},
		},
		{
			name:     "Coordinates missing",
			body:     `{"id":"101","description":"Lab","room_number":5,"map_code":"A"}`,
			expected: []string{"x and y coordinates are required and must be numbers"},
		},
		{
			name:     "Floor out of range",
			body:     `{"id":"101","description":"Lab","room_number":5,"x":1,"y":1,"floor":101,"map_code":"A"}`,
			expected: []string{"Floor must be a valid number"},
		},
		{
			name:     "Empty floor is treated as unset",
			body:     `{"id":"101","description":"Lab","room_number":5,"x":1,"y":1,"floor":"","map_code":"A"}`,
			expected: nil,
		},
		{
			name:     "Bad area id",
			body:     `{"id":"101","description":"Lab","room_number":5,"x":1,"y":1,"area_id":"abc","map_code":"A"}`,
			expected: []string{"Area ID must be a valid number"},
		},
		{
			name:     "Missing map code",
			body:     `{"id":"101","description":"Lab","room_number":5,"x":1,"y":1}`,
			expected: []string{"Map code is required"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var p RoomCreatePayload
			require.NoError(t, json.Unmarshal([]byte(tc.body), &p))
			assert.Equal(t, tc.expected, RoomCreate(p))
		})
	}
}

func TestRoomUpdate(t *testing.T) {
	testCases := []struct {
		name     string
		id       string
		body     string
		expected []string
	}{
		{
			name:     "Valid partial update",
			id:       "101",
			body:     `{"description":"Renamed","x":10}`,
			expected: nil,
		},
		{
			name:     "Blank id from URL",
			id:       " ",
			body:     `{}`,
			expected: []string{"Room ID is required and must be a non-empty string"},
		},
		{
			name:     "Area zero rejected",
			id:       "101",
			body:     `{"area":0}`,
			expected: []string{"Area must be a valid positive integer (area ID)"},
		},
		{
			name:     "Area cleared with empty string is fine",
			id:       "101",
			body:     `{"area":""}`,
			expected: nil,
		},
		{
			name:     "Area cleared with null is fine",
			id:       "101",
			body:     `{"area":null}`,
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var p RoomUpdatePayload
			require.NoError(t, json.Unmarshal([]byte(tc.body), &p))
			assert.Equal(t, tc.expected, RoomUpdate(tc.id, p))
		})
	}
}

func TestArea(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		isCreate bool
		expected []string
	}{
		{
			name:     "Valid create",
			body:     `{"name":"North wing","map_code":"A"}`,
			isCreate: true,
			expected: nil,
		},
		{
			name:     "Name too short",
			body:     `{"name":"N","map_code":"A"}`,
			isCreate: true,
			expected: []string{"Name is required (2-100 chars)"},
		},
		{
			name:     "Map code required on create only",
			body:     `{"name":"North wing"}`,
			isCreate: true,
			expected: []string{"map_code is required"},
		},
		{
			name:     "Update does not need map code",
			body:     `{"name":"North wing"}`,
			expected: nil,
		},
		{
			name:     "Non-numeric id",
			body:     `{"id":"abc","name":"North wing","map_code":"A"}`,
			isCreate: true,
			expected: []string{"ID must be a valid number"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var p AreaPayload
			require.NoError(t, json.Unmarshal([]byte(tc.body), &p))
			assert.Equal(t, tc.expected, Area(p, tc.isCreate))
		})
	}
}

func TestCredentials(t *testing.T) {
	assert.Empty(t, Credentials("admin", "secret"))
	assert.Equal(t,
		[]string{"Username is required and must be a non-empty string", "Password must be at least 3 characters long"},
		Credentials("", "ab"))
	assert.Equal(t,
		[]string{"Username can only contain letters, numbers, underscores, and hyphens"},
		Credentials("bad name", "secret"))
}
