// File: vec/json.go
// Author: momentics <momentics@gmail.com>
//
// JSON codec: a vector encodes as a JSON array of its elements.

package vec

import (
	"fmt"

	"github.com/goccy/go-json"
)

// MarshalJSON encodes the elements front to back.
func (v *Vec[T]) MarshalJSON() ([]byte, error) {
	if v.len == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(v.Slice())
}

// UnmarshalJSON drops the current elements and pushes the decoded ones.
// On a decode error the vector is left untouched.
func (v *Vec[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("vec: decode: %w", err)
	}
	v.Clear()
	for _, x := range items {
		v.Push(x)
	}
	return nil
}
