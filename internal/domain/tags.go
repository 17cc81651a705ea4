package domain

import (
	"encoding/json"
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

// NormalizeTags canonicalizes the shapes tags arrive in upstream:
//   - nil yields an empty slice
//   - a string is split on commas
//   - a sequence is taken element by element
//
// Every piece is trimmed and empty pieces are dropped. Order is preserved
// and duplicates are kept. Unsupported shapes yield an empty slice.
func NormalizeTags(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case string:
		return compactTags(strings.Split(v, ","))
	case *string:
		if v == nil {
			return []string{}
		}
		return compactTags(strings.Split(*v, ","))
	case []string:
		return compactTags(v)
	case Tags:
		return compactTags(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, el := range v {
			if s, ok := el.(string); ok {
				parts = append(parts, s)
			}
		}
		return compactTags(parts)
	default:
		return []string{}
	}
}

func compactTags(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

var errTagsShape = errors.New("tags must be a string or a list of strings")

// Tags is a normalized tag list that accepts either a comma-joined string
// or a list of strings when decoded from JSON or YAML.
type Tags []string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tags) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.(type) {
	case nil, string, []any:
	default:
		return errTagsShape
	}
	*t = NormalizeTags(raw)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Tags) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*t = Tags{}
			return nil
		}
		*t = NormalizeTags(node.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*t = NormalizeTags(items)
		return nil
	default:
		return errTagsShape
	}
}
