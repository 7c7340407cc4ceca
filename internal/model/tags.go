package model

import "encoding/json"

// Tags are persisted as a JSON-encoded array string. A bare scalar coming in
// from a client is normalized to a one-element array before it is stored.

func EncodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func DecodeTags(stored string) []string {
	if stored == "" {
		return []string{}
	}

	var tags []string
	if err := json.Unmarshal([]byte(stored), &tags); err == nil {
		return tags
	}

	var single string
	if err := json.Unmarshal([]byte(stored), &single); err == nil {
		return []string{single}
	}

	return []string{}
}

// NormalizeTags accepts the raw request representation, which may be an array
// of strings or a single string.
func NormalizeTags(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var tags []string
	if err := json.Unmarshal(raw, &tags); err == nil {
		return tags
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return []string{single}
	}

	return []string{}
}
