package bucket

import (
	"encoding/json"
	"fmt"

	"github.com/idilsaglam/bucket/internal/model"
)

// decode parses a persisted record. The record is external input: it must be
// a JSON object, unknown keys are dropped and missing categories come back
// empty.
func decode(b []byte) (model.State, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("record is null")
	}
	st := model.NewState()
	for _, c := range model.Categories {
		v, ok := raw[string(c)]
		if !ok || string(v) == "null" {
			continue
		}
		var items []model.Item
		if err := json.Unmarshal(v, &items); err != nil {
			return nil, fmt.Errorf("category %s: %w", c, err)
		}
		if items != nil {
			st[c] = items
		}
	}
	return st, nil
}
