package steering

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema/overrides.schema.json
var overridesSchema string

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func overridesValidator() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = jsonschema.CompileString("overrides.schema.json", overridesSchema)
	})
	return compiledSchema, schemaErr
}

// LoadOverrides reads overrides from a JSON or YAML file (chosen by extension),
// validates them against the embedded schema and decodes them.
func LoadOverrides(path string) (Overrides, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, fmt.Errorf("failed to read overrides: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseOverridesYAML(b)
	default:
		return ParseOverrides(b)
	}
}

// ParseOverridesYAML is ParseOverrides for YAML documents.
func ParseOverridesYAML(b []byte) (Overrides, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return Overrides{}, fmt.Errorf("failed to decode overrides yaml: %w", err)
	}
	return OverridesFromMap(doc)
}

// OverridesFromMap converts a generic document, such as one received over the
// wire, into Overrides. It goes through the same validation as files.
func OverridesFromMap(doc map[string]any) (Overrides, error) {
	if doc == nil {
		return Overrides{}, nil
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return Overrides{}, fmt.Errorf("failed to encode overrides: %w", err)
	}
	return ParseOverrides(b)
}

// ParseOverrides validates a JSON document against the overrides schema and
// decodes it. Unknown keys and non-numeric priorities are rejected.
func ParseOverrides(b []byte) (Overrides, error) {
	sch, err := overridesValidator()
	if err != nil {
		return Overrides{}, fmt.Errorf("failed to compile overrides schema: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return Overrides{}, fmt.Errorf("failed to decode overrides json: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return Overrides{}, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	var o Overrides
	if err := json.Unmarshal(b, &o); err != nil {
		return Overrides{}, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	return o, nil
}
