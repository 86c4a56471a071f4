package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Load decodes the file at filePath into v. Files ending in .json or .jsonc
// are JSON with comments and trailing commas allowed; anything else is YAML.
// ${VAR} and ${VAR:-default} are expanded from the environment first.
// Unknown keys are rejected so a misspelt setting never passes silently.
func Load(filePath string, v interface{}) error {
	data, err := os.ReadFile(filePath) //nolint:gosec // G304: path comes from the operator
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	content := []byte(substituteEnvVars(string(data)))

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".json", ".jsonc":
		dec := gojson.NewDecoder(bytes.NewReader(jsonc.ToJSON(content)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("failed to parse JSON %s: %w", filePath, err)
		}
	default:
		if len(bytes.TrimSpace(content)) == 0 {
			return nil
		}
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("failed to parse YAML %s: %w", filePath, err)
		}
	}
	return nil
}

// LoadBase loads a BaseConfig over the defaults and validates it. The run
// name defaults to the file's base name.
func LoadBase(filePath string) (*BaseConfig, error) {
	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	cfg := NewBaseConfig(name)
	if err := Load(filePath, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filePath, err)
	}
	return cfg, nil
}

// Save writes v to filePath as YAML
func Save(filePath string, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// substituteEnvVars expands ${NAME} and ${NAME:-fallback}. An unterminated
// reference is left as is.
func substituteEnvVars(content string) string {
	var b strings.Builder
	for {
		start := strings.Index(content, "${")
		if start < 0 {
			break
		}
		end := strings.IndexByte(content[start:], '}')
		if end < 0 {
			break
		}
		end += start

		b.WriteString(content[:start])
		name, fallback, hasFallback := strings.Cut(content[start+2:end], ":-")
		if v, ok := os.LookupEnv(name); ok && (v != "" || !hasFallback) {
			b.WriteString(v)
		} else {
			b.WriteString(fallback)
		}
		content = content[end+1:]
	}
	b.WriteString(content)
	return b.String()
}
