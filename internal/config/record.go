package config

import (
	"fmt"
	"os"
)

// LoadRecord reads raw field values from a YAML or JSON file, as the
// presentation layer would supply them.
func LoadRecord(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}

	values := make(map[string]any)
	if err := decode(path, data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse record: %w", err)
	}
	return values, nil
}
