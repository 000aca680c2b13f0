package models

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Fields that change through the workflow or storage rather than through an edit
var diffIgnored = map[string]bool{
	"id":         true,
	"status":     true,
	"revision":   true,
	"createdAt":  true,
	"shareToken": true,
}

// DiffFields compares the JSON form of two plans key by key and returns the changed top-level fields
func DiffFields(before, after *SafetyPlan) (map[string]FieldChange, error) {
	oldJSON, err := json.Marshal(before)
	if err != nil {
		return nil, err
	}
	newJSON, err := json.Marshal(after)
	if err != nil {
		return nil, err
	}

	oldFields := topLevel(oldJSON)
	newFields := topLevel(newJSON)

	keys := make(map[string]bool, len(newFields))
	for k := range newFields {
		keys[k] = true
	}
	for k := range oldFields {
		keys[k] = true
	}

	changes := make(map[string]FieldChange)
	for k := range keys {
		if diffIgnored[k] {
			continue
		}
		o, n := oldFields[k], newFields[k]
		if o.Raw == n.Raw {
			continue
		}
		changes[k] = FieldChange{Old: o.Value(), New: n.Value()}
	}
	return changes, nil
}

func topLevel(doc []byte) map[string]gjson.Result {
	fields := make(map[string]gjson.Result)
	gjson.ParseBytes(doc).ForEach(func(key, value gjson.Result) bool {
		fields[key.String()] = value
		return true
	})
	return fields
}
