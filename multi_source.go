package envscope

import (
	"strings"
)

// MultiSource combines several sources into a single Source. Lookup queries
// them in the order they were added and the first source that binds the name
// wins, so earlier sources shadow later ones. This lets a Scope layer file
// sources over the process environment while still seeing one source.
type MultiSource struct {
	sources []Source
}

// NewMultiSource creates a MultiSource. Sources are queried in the order
// they are provided.
func NewMultiSource(sources ...Source) *MultiSource {
	return &MultiSource{sources: sources}
}

// Add appends a source to the end of the list (lowest priority).
func (m *MultiSource) Add(src Source) {
	m.sources = append(m.sources, src)
}

// Lookup retrieves a value by name from the first source that binds it.
// An error from any source stops the search.
func (m *MultiSource) Lookup(name string) (string, bool, error) {
	for _, src := range m.sources {
		val, found, err := src.Lookup(name)
		if err != nil {
			return "", false, err
		}
		if found {
			return val, true, nil
		}
	}
	return "", false, nil
}

// Name returns the combined source name for logging purposes.
func (m *MultiSource) Name() string {
	names := make([]string, len(m.sources))
	for i, src := range m.sources {
		names[i] = src.Name()
	}
	return "multi[" + strings.Join(names, ",") + "]"
}
