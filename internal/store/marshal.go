package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/neoschema/internal/config"
)

// marshalConfig encodes a config as canonical JSON TEXT. Struct fields
// encode in declaration order and HTML escaping is disabled, so equal
// configs always produce equal text.
func marshalConfig(cfg config.Config) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(cfg); err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalConfig parses config JSON TEXT. Missing keys keep their
// defaults.
func unmarshalConfig(data string) (config.Config, error) {
	cfg := config.Default()
	if data == "" || data == "{}" {
		return cfg, nil
	}
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		return config.Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
