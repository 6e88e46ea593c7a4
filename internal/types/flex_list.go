package types

import (
	"encoding/json"
)

// FlexList is a slice that can be unmarshaled from either a single JSON
// value or a JSON array. Intake clients send notary_states as "FL" or
// ["FL", "GA"] depending on form version.
type FlexList[T any] []T

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexList[T]) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	// If it starts with '[', treat it as a normal array
	if data[0] == '[' {
		var slice []T
		if err := json.Unmarshal(data, &slice); err != nil {
			return err
		}
		*f = slice
		return nil
	}

	// Otherwise treat it as a single element
	var single T
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*f = []T{single}
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexList[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal([]T(f))
}

// Slice returns the underlying slice.
func (f FlexList[T]) Slice() []T {
	return []T(f)
}
