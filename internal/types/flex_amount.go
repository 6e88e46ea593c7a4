package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// FlexAmount is a currency amount in minor units (cents) that can be
// unmarshaled from a JSON number or a decimal string such as "125.00".
// A zero-length or null input leaves the value at zero so callers can
// apply per-field defaults.
type FlexAmount int64

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexAmount) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" || string(data) == `""` {
		return nil
	}

	// Try unmarshaling as a number first
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexAmount(math.Round(n * 100))
		return nil
	}

	// Try unmarshaling as a decimal string
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		val, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("FlexAmount: invalid amount string %q: %w", s, err)
		}
		*f = FlexAmount(math.Round(val * 100))
		return nil
	}

	return fmt.Errorf("FlexAmount: unexpected type, expected number or string")
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(f))
}

// Cents converts FlexAmount back to int64 minor units.
func (f FlexAmount) Cents() int64 {
	return int64(f)
}

// OrDefault returns the amount in cents, or def when the field was absent.
func (f FlexAmount) OrDefault(def int64) int64 {
	if f == 0 {
		return def
	}
	return int64(f)
}
