package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"
)

const (
	// SchemaFilename is the file name of the bundled config schema.
	SchemaFilename = "samplegen.v1.schema.json"

	schemaURL = "https://github.com/ekisa-team/samplegen/" + SchemaFilename
)

//go:embed schema/samplegen.v1.schema.json
var bundledSchema []byte

// BundledSchema returns the config schema shipped with the binary.
func BundledSchema() []byte {
	return bytes.Clone(bundledSchema)
}

// LoadAndValidate loads and validates the configuration.
// An empty schemaPath validates against the bundled schema.
func LoadAndValidate(path, schemaPath string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read config: %w", err)
	}

	return Parse(data, schemaPath)
}

// Parse validates raw YAML and decodes it into a Config.
func Parse(data []byte, schemaPath string) (*Config, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: invalid YAML: %w", err)
	}

	schema, err := compileSchema(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("config: failed to compile schema: %w", err)
	}

	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal into Config struct: %w", err)
	}

	return &config, nil
}

func compileSchema(schemaPath string) (*jsonschema.Schema, error) {
	if schemaPath != "" {
		return jsonschema.Compile(schemaPath)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(bundledSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
}
