package export

import "encoding/json"

// Pick projects v through its JSON form and keeps only the requested keys.
// Used for the CLI's -fields output.
func Pick(v any, keys ...string) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if val, ok := m[k]; ok {
			out[k] = val
		}
	}
	return out
}

// PickAll applies Pick to every item, keeping order.
func PickAll[T any](items []T, keys ...string) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		out = append(out, Pick(it, keys...))
	}
	return out
}
