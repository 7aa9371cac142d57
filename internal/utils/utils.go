package utils

import (
	"encoding/json"
)

// StructToMap round-trips a value through JSON to produce the loosely-typed map
// shape the snapshot file stores. SDK response structs keep their wire field names
// this way, so the persisted data mirrors the provider's describe output.
func StructToMap(s any) (map[string]any, error) {
	jsonBytes, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	err = json.Unmarshal(jsonBytes, &result)
	return result, err
}
