package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexInt is an int64 that can be unmarshaled from either a JSON number
// or a JSON string. Wizard clients send numeric form fields as strings.
type FlexInt int64

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" || string(data) == `""` {
		return nil
	}

	// Try unmarshaling as a number first
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexInt(n)
		return nil
	}

	// Try unmarshaling as a string
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		val, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("FlexInt: invalid integer string %q: %w", s, err)
		}
		*f = FlexInt(val)
		return nil
	}

	return fmt.Errorf("FlexInt: unexpected type, expected number or string")
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(f))
}

// Int64 converts FlexInt back to int64.
func (f FlexInt) Int64() int64 {
	return int64(f)
}

// OrDefault returns the value, or def when the field was absent or zero.
func (f FlexInt) OrDefault(def int64) int64 {
	if f == 0 {
		return def
	}
	return int64(f)
}
