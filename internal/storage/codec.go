package storage

import (
	"encoding/json"
)

// WriteJSON marshals v and writes it under key.
func WriteJSON(d Driver, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return d.Write(key, data)
}

// ReadJSON reads key and unmarshals into v. A payload that fails to parse
// surfaces as a CorruptedError carrying the raw bytes for recovery.
func ReadJSON(d Driver, key string, v any) error {
	data, err := d.Read(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &CorruptedError{Key: key, Raw: data, Err: err}
	}
	return nil
}

// ReadRaw reads key into a generic map, the shape the migration chain works
// on. Parse failures surface as CorruptedError like ReadJSON.
func ReadRaw(d Driver, key string) (map[string]any, error) {
	data, err := d.Read(key)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &CorruptedError{Key: key, Raw: data, Err: err}
	}
	return raw, nil
}

// WriteFlag stores a small boolean flag record.
func WriteFlag(d Driver, key string, value bool) error {
	return WriteJSON(d, key, map[string]bool{"value": value})
}

// ReadFlag reads a boolean flag record; absent or corrupt flags read false.
func ReadFlag(d Driver, key string) bool {
	var raw map[string]bool
	if err := ReadJSON(d, key, &raw); err != nil {
		return false
	}
	return raw["value"]
}
