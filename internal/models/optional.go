package models

import "encoding/json"

// OptionalString is a JSON field that distinguishes "absent",
// "present as null" and "present with a value". A plain *string
// cannot tell the first two apart, which makes "clear this field"
// and "leave this field alone" ambiguous in partial updates.
type OptionalString struct {
	// Set reports whether the field appeared in the JSON object at all.
	Set bool
	// Valid reports whether the field held a non-null value.
	Valid bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		o.Value = ""
		return nil
	}

	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
