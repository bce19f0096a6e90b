package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveTo writes cfg to path. Top-level keys in an existing file that Config
// does not manage are kept.
func SaveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	merged := make(map[string]json.RawMessage)
	if existing, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(existing, &merged); err != nil {
			return fmt.Errorf("parse existing config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	var managed map[string]json.RawMessage
	if err := json.Unmarshal(data, &managed); err != nil {
		return err
	}
	for k, v := range managed {
		merged[k] = v
	}

	out, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}
