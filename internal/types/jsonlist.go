package types

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// StringList marshals a []string into a JSONB column value.
func StringList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}

// DecodeStringList is the inverse of StringList; bad or empty payloads decode
// to an empty slice rather than an error.
func DecodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return []string{}
	}
	return items
}

// FeatureMap marshals an arbitrary feature map into a JSONB column value.
func FeatureMap(features map[string]interface{}) datatypes.JSON {
	if features == nil {
		features = map[string]interface{}{}
	}
	raw, err := json.Marshal(features)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(raw)
}

// DecodeFeatureMap is the inverse of FeatureMap.
func DecodeFeatureMap(raw datatypes.JSON) map[string]interface{} {
	if len(raw) == 0 {
		return map[string]interface{}{}
	}
	var features map[string]interface{}
	if err := json.Unmarshal(raw, &features); err != nil {
		return map[string]interface{}{}
	}
	return features
}
