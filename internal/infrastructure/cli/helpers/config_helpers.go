// Package helpers holds small pieces shared by CLI commands.
package helpers

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/saurus-go/internal/app"
	configapp "github.com/doeshing/saurus-go/internal/application/config"
	"github.com/doeshing/saurus-go/internal/domain"
	configinfra "github.com/doeshing/saurus-go/internal/infrastructure/config"
)

// GetConfigLoader extracts the config loader from container with error handling
func GetConfigLoader(container *app.Container) (*configinfra.FileLoader, error) {
	if container.ConfigLoader == nil {
		return nil, fmt.Errorf("config loader unavailable")
	}
	return container.ConfigLoader, nil
}

// SaveConfigWithValidation validates cfg, backs up the current file and saves.
func SaveConfigWithValidation(container *app.Container, cfg domain.Config) error {
	loader, err := GetConfigLoader(container)
	if err != nil {
		return err
	}
	if err := configapp.Validate(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if _, err := os.Stat(loader.Path()); err == nil {
		if _, err := loader.Backup(); err != nil {
			return fmt.Errorf("failed to create configuration backup: %w", err)
		}
	}
	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

// ConfigToMap converts cfg into the generic map a YAML document decodes to.
func ConfigToMap(cfg domain.Config) (map[string]interface{}, error) {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	out := map[string]interface{}{}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MapToConfig is the inverse of ConfigToMap.
func MapToConfig(m map[string]interface{}) (domain.Config, error) {
	raw, err := yaml.Marshal(m)
	if err != nil {
		return domain.Config{}, err
	}
	var cfg domain.Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// ParseYAMLValue parses input as a YAML scalar or collection; anything that
// does not parse is kept as a literal string.
func ParseYAMLValue(input string) interface{} {
	var parsed interface{}
	if err := yaml.Unmarshal([]byte(input), &parsed); err != nil || parsed == nil {
		return input
	}
	return parsed
}

// LookupPath walks a dotted key path through nested maps.
func LookupPath(data interface{}, path []string) (interface{}, bool) {
	for _, key := range path {
		node, ok := data.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if data, ok = node[key]; !ok {
			return nil, false
		}
	}
	return data, true
}

// AssignPath sets value at path, but only where the path already exists.
// Unknown keys are rejected instead of being silently added.
func AssignPath(root map[string]interface{}, path []string, value interface{}) error {
	if len(path) == 0 {
		return fmt.Errorf("empty key")
	}
	node := root
	for i, key := range path[:len(path)-1] {
		child, ok := node[key].(map[string]interface{})
		if !ok {
			return fmt.Errorf("unknown section %q", joinPath(path[:i+1]))
		}
		node = child
	}
	last := path[len(path)-1]
	if _, ok := node[last]; !ok {
		return fmt.Errorf("unknown key %q", joinPath(path))
	}
	node[last] = value
	return nil
}

func joinPath(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}
