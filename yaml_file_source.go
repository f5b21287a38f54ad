package envscope

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLFileSource implements the Source interface for flat YAML mapping files.
// Scalar values are kept as strings, an explicit null leaves the key unbound,
// and nested mappings or sequences are rejected because the resolution
// contract is a flat string store.
type YAMLFileSource struct {
	filePath string
	values   map[string]string
}

// NewYAMLFileSource creates a new YAMLFileSource that loads values from the
// specified YAML file. It immediately reads and parses the file during
// initialization.
func NewYAMLFileSource(filePath string) (*YAMLFileSource, error) {
	source := &YAMLFileSource{
		filePath: filePath,
		values:   make(map[string]string),
	}

	if err := source.load(); err != nil {
		return nil, fmt.Errorf("failed to load yaml file: %w", err)
	}

	return source, nil
}

// Lookup retrieves a value by name from the loaded YAML file.
func (s *YAMLFileSource) Lookup(name string) (string, bool, error) {
	value, found := s.values[name]
	return value, found, nil
}

// Name returns the name of this source including the file path.
func (s *YAMLFileSource) Name() string {
	return fmt.Sprintf("yaml-file[%s]", s.filePath)
}

// Reload reloads the values from the YAML file.
func (s *YAMLFileSource) Reload() error {
	return s.load()
}

// load reads and parses the YAML file.
func (s *YAMLFileSource) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	raw := make(map[string]any)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}

	values := make(map[string]string, len(raw))
	for key, val := range raw {
		switch v := val.(type) {
		case nil:
			// explicit null leaves the key unbound
		case string:
			values[key] = v
		case bool, int, int64, uint64, float64:
			values[key] = fmt.Sprint(v)
		default:
			return fmt.Errorf("key %q: nested values are not supported", key)
		}
	}

	s.values = values
	return nil
}
