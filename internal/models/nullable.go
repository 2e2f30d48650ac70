package models

import (
	"encoding/json"
)

// NullableFloat represents a numeric field that can distinguish between:
// - Field absent in JSON: Set=false, Valid=false, Value=0
// - Field present with null: Set=true, Valid=false, Value=0
// - Field present with value: Set=true, Valid=true, Value=the value
//
// This is needed because Go's standard JSON unmarshaling treats both
// "field absent" and "field: null" as nil for pointer types. For event
// values both mean "no magnitude", but validation wants to tell them apart.
type NullableFloat struct {
	Value float64
	Valid bool // true if Value is not null
	Set   bool // true if field was present in JSON
}

// UnmarshalJSON implements custom JSON unmarshaling for NullableFloat.
func (nf *NullableFloat) UnmarshalJSON(data []byte) error {
	nf.Set = true // Field was present in JSON

	if string(data) == "null" {
		nf.Valid = false
		nf.Value = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	nf.Value = f
	nf.Valid = true
	return nil
}

// MarshalJSON implements custom JSON marshaling for NullableFloat.
func (nf NullableFloat) MarshalJSON() ([]byte, error) {
	if !nf.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(nf.Value)
}

// ToPtr converts NullableFloat to *float64 for use with Event.
// Returns nil if Valid is false, otherwise returns pointer to Value.
func (nf NullableFloat) ToPtr() *float64 {
	if !nf.Valid {
		return nil
	}
	return &nf.Value
}
