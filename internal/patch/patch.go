package patch

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Optional JSON fields for partial updates. Each type records whether the
// field appeared in the request body at all, so callers can tell an omitted
// field from one explicitly sent as null (or as the empty string, which the
// dashboard sends to clear a value).

// String is an optional string field.
type String struct {
	Present bool
	Null    bool
	Value   string
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *String) UnmarshalJSON(b []byte) error {
	s.Present = true
	raw := string(b)
	if raw == "null" {
		s.Null = true
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		return json.Unmarshal(b, &s.Value)
	}
	// Tolerate bare numbers: the client sends room numbers unquoted.
	s.Value = raw
	return nil
}

// Cleared reports whether the field was sent as null or as an empty string.
func (s String) Cleared() bool {
	return s.Present && (s.Null || strings.TrimSpace(s.Value) == "")
}

// Int is an optional integer field. Valid reports whether a present,
// non-null value parsed as an integer; bounds checking is the validator's
// job, not this type's.
type Int struct {
	Present bool
	Null    bool
	Valid   bool
	Value   int
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Int) UnmarshalJSON(b []byte) error {
	i.Present = true
	raw, null, err := unwrap(b)
	if err != nil {
		return err
	}
	if null {
		i.Null = true
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	i.Valid = true
	i.Value = n
	return nil
}

// Int64 is an optional 64-bit integer field, used for area ids.
type Int64 struct {
	Present bool
	Null    bool
	Valid   bool
	Value   int64
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Int64) UnmarshalJSON(b []byte) error {
	i.Present = true
	raw, null, err := unwrap(b)
	if err != nil {
		return err
	}
	if null {
		i.Null = true
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	i.Valid = true
	i.Value = n
	return nil
}

// unwrap normalizes a raw JSON scalar: JSON null and the empty (or blank)
// string both count as null, quoted numbers are unquoted.
func unwrap(b []byte) (raw string, null bool, err error) {
	raw = string(b)
	if raw == "null" {
		return "", true, nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", false, err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return "", true, nil
		}
	}
	return raw, false, nil
}
