package resolve

import (
	"fmt"
	"sort"
	"strings"
)

// MapSource serves templates from an in-memory name to content mapping. It is
// the smallest possible custom store: useful for tests, generated templates,
// and theme partial overrides. Immutable after construction.
type MapSource struct {
	name      string
	kind      SourceKind
	label     string
	templates map[string][]byte
}

var _ Source = (*MapSource)(nil)
var _ Lister = (*MapSource)(nil)

// NewMapSource copies templates into a new source.
func NewMapSource(name string, kind SourceKind, label string, templates map[string]string) (*MapSource, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("resolve: source name is required")
	}

	copied := make(map[string][]byte, len(templates))
	for key, content := range templates {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		copied[key] = []byte(content)
	}
	return &MapSource{name: name, kind: kind, label: label, templates: copied}, nil
}

func (s *MapSource) Name() string     { return s.name }
func (s *MapSource) Kind() SourceKind { return s.kind }
func (s *MapSource) Label() string    { return s.label }

// Attempt looks the name up in the mapping.
func (s *MapSource) Attempt(name string) ([]byte, bool, error) {
	content, ok := s.templates[name]
	if !ok {
		return nil, false, nil
	}
	return content, true, nil
}

// Names lists the mapped template names, sorted.
func (s *MapSource) Names() []string {
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
