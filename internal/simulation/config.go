package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lao-tseu-is-alive/go-automata/pkg/steering"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema/scenario.schema.json
var scenarioSchema string

// Config describes one scenario: the world, who lives in it and how each
// group is tuned on top of its built-in behavior.
type Config struct {
	// World Dimensions
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`

	// Population
	Boids     int `json:"boids"`
	Predators int `json:"predators"`

	// Ticks per second, also the dt handed to the world on every step
	TickRate int `json:"tickRate"`
	// 0 picks a random seed
	Seed int64 `json:"seed"`

	// Visual extent of an automaton; its bounding radius derives from it
	SpriteSize float64 `json:"spriteSize"`
	Debug      bool    `json:"debug"`

	// Per group engine overrides, layered over the built-in group setup
	Boid     steering.Overrides `json:"boid"`
	Predator steering.Overrides `json:"predator"`
}

func DefaultConfig() *Config {
	return &Config{
		WorldWidth:  1000,
		WorldHeight: 800,
		Boids:       120,
		Predators:   3,
		TickRate:    60,
		Seed:        0,
		SpriteSize:  12,
		Debug:       false,
	}
}

// LoadConfig loads a scenario from a JSON or YAML file, validates it against the
// embedded schema and layers it over DefaultConfig.
func LoadConfig(configFile string) (*Config, error) {
	// 1. Read Config File
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".yaml", ".yml":
		var doc map[string]any
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode config yaml: %w", err)
		}
		if b, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("failed to convert config yaml: %w", err)
		}
	}
	return ParseConfig(b)
}

// ParseConfig is LoadConfig for an in-memory JSON document.
func ParseConfig(b []byte) (*Config, error) {
	// 1. Compile Schema
	sch, err := jsonschema.CompileString("scenario.schema.json", scenarioSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Validate
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 3. Group overrides go through the engine's own schema
	doc, _ := v.(map[string]any)
	for _, key := range []string{"boid", "predator"} {
		group, ok := doc[key].(map[string]any)
		if !ok {
			continue
		}
		if _, err := steering.OverridesFromMap(group); err != nil {
			return nil, fmt.Errorf("config %s overrides: %w", key, err)
		}
	}

	// 4. Unmarshal over the defaults
	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
