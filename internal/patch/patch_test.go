package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

type payload struct {
	Name  String `json:"name"`
	Floor Int    `json:"floor"`
	Area  Int64  `json:"area"`
}

func TestFieldPresence(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		expected payload
	}{
		{
			name: "All fields set",
			body: `{"name":"Lab","floor":3,"area":12}`,
			expected: payload{
				Name:  String{Present: true, Value: "Lab"},
				Floor: Int{Present: true, Valid: true, Value: 3},
				Area:  Int64{Present: true, Valid: true, Value: 12},
			},
		},
		{
			name:     "All fields omitted",
			body:     `{}`,
			expected: payload{},
		},
		{
			name: "Explicit nulls are present but null",
			body: `{"name":null,"floor":null,"area":null}`,
			expected: payload{
				Name:  String{Present: true, Null: true},
				Floor: Int{Present: true, Null: true},
				Area:  Int64{Present: true, Null: true},
			},
		},
		{
			name: "Empty strings clear numeric fields",
			body: `{"floor":"","area":""}`,
			expected: payload{
				Floor: Int{Present: true, Null: true},
				Area:  Int64{Present: true, Null: true},
			},
		},
		{
			name: "Quoted numbers parse",
			body: `{"floor":"7","area":"4"}`,
			expected: payload{
				Floor: Int{Present: true, Valid: true, Value: 7},
				Area:  Int64{Present: true, Valid: true, Value: 4},
			},
		},
		{
			name: "Garbage numbers are present but invalid",
			body: `{"floor":"abc","area":1.5}`,
			expected: payload{
				Floor: Int{Present: true},
				Area:  Int64{Present: true},
			},
		},
		{
			name: "Bare number coerces to string value",
			body: `{"name":5}`,
			expected: payload{
				Name: String{Present: true, Value: "5"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var p payload
			assert.NoError(t, json.Unmarshal([]byte(tc.body), &p))
			assert.Equal(t, tc.expected, p)
		})
	}
}

func TestStringCleared(t *testing.T) {
	assert.False(t, String{}.Cleared())
	assert.True(t, String{Present: true, Null: true}.Cleared())
	assert.True(t, String{Present: true, Value: "  "}.Cleared())
	assert.False(t, String{Present: true, Value: "A1"}.Cleared())
}
