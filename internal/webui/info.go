package webui

import "strings"

// Metadata is an insertion-ordered view of a generation info blob.
type Metadata struct {
	keys   []string
	values map[string]string
}

// ParseInfo reads the prompt from the first line and "key: value" pairs,
// separated by ", ", from the second. Anything after that is ignored, and
// input with fewer than two lines yields no entries.
func ParseInfo(info string) Metadata {
	var m Metadata

	lines := strings.Split(info, "\n")
	if len(lines) < 2 {
		return m
	}

	m.set("Prompt", lines[0])
	for _, item := range strings.Split(lines[1], ", ") {
		split := strings.Split(item, ": ")
		if len(split) >= 2 {
			m.set(split[0], split[1])
		}
	}
	return m
}

func (m *Metadata) set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m Metadata) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m Metadata) Len() int {
	return len(m.keys)
}

func (m Metadata) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

func (m Metadata) Map() map[string]string {
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}
