package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Call is a partial request used to pre-fill the form from outside, such
// as a "try it" entry on a documentation page.
type Call struct {
	Method   string     `json:"method,omitempty"   yaml:"method,omitempty"`
	Endpoint string     `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Body     string     `json:"body,omitempty"     yaml:"body,omitempty"`
	Headers  HeaderList `json:"headers,omitempty"  yaml:"headers,omitempty"`
}

// HeaderList decodes from either an ordered list of {key, value} objects
// or a plain mapping. Mappings have no order of their own, so their
// entries are sorted by key.
type HeaderList []HeaderEntry

func (l *HeaderList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}
	if trimmed[0] == '{' {
		var m map[string]string
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return fmt.Errorf("headers object: %w", err)
		}
		*l = fromMap(m)
		return nil
	}
	var entries []HeaderEntry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return fmt.Errorf("headers list: %w", err)
	}
	*l = entries
	return nil
}

func (l *HeaderList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		var m map[string]string
		if err := node.Decode(&m); err != nil {
			return fmt.Errorf("headers mapping: %w", err)
		}
		*l = fromMap(m)
	case yaml.SequenceNode:
		var entries []HeaderEntry
		if err := node.Decode(&entries); err != nil {
			return fmt.Errorf("headers list: %w", err)
		}
		*l = entries
	default:
		if node.Tag == "!!null" {
			*l = nil
			return nil
		}
		return fmt.Errorf("line %d: headers must be a list or mapping", node.Line)
	}
	return nil
}

func fromMap(m map[string]string) HeaderList {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(HeaderList, 0, len(keys))
	for _, k := range keys {
		out = append(out, HeaderEntry{Key: k, Value: m[k]})
	}
	return out
}
