package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// RenderYAML renders cfg as a YAML document in config-file form.
func RenderYAML(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# tide configuration\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}
