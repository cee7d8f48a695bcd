package cmd

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlUnmarshal decodes a settings document.
func yamlUnmarshal(b []byte, out any) error {
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("yaml unmarshal: %w", err)
	}
	return nil
}
