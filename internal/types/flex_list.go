package types

import (
	"encoding/json"
)

// FlexList is a slice that can be unmarshaled from either a single JSON
// value or a JSON array, so `{"recipeIds": 7}` and `{"recipeIds": [7, 8]}`
// both parse.
type FlexList[T any] []T

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexList[T]) UnmarshalJSON(data []byte) error {
	var list []T
	if err := json.Unmarshal(data, &list); err == nil {
		*f = list
		return nil
	}

	var single T
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*f = FlexList[T]{single}
	return nil
}

// Uint64Slice converts a flexible ID list to plain uint64s.
func Uint64Slice(list FlexList[FlexUint64]) []uint64 {
	out := make([]uint64, len(list))
	for i, v := range list {
		out[i] = v.Uint64()
	}
	return out
}
