package numerology

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/tables.yaml
var tablesYAML []byte

// Planet is the fixed identity attached to a square digit.
type Planet struct {
	Name   string `yaml:"name"   json:"name"`
	Sphere string `yaml:"sphere" json:"sphere"`
	Color  string `yaml:"color"  json:"color"`
}

// Band maps a compatibility score range to a qualitative level.
type Band struct {
	Level       string `yaml:"level"`
	Min         int    `yaml:"min"`
	Description string `yaml:"description"`
}

// Tables holds every static lookup the engine uses.
type Tables struct {
	FallbackRecommendation string                   `yaml:"fallback_recommendation"`
	Planets                map[int]Planet           `yaml:"planets"`
	Recommendations        map[int]map[int][]string `yaml:"recommendations"`
	Compatibility          [][]int                  `yaml:"compatibility"`
	Bands                  []Band                   `yaml:"bands"`
}

// defaultTables is decoded once; the engine only ever reads it.
var defaultTables = mustLoadTables(tablesYAML)

// LoadTables decodes and validates a tables document.
func LoadTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to decode numerology tables: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func mustLoadTables(data []byte) *Tables {
	t, err := LoadTables(data)
	if err != nil {
		// ALLOW-PANIC: the embedded tables are part of the binary
		panic(err)
	}
	return t
}

func (t *Tables) validate() error {
	if t.FallbackRecommendation == "" {
		return fmt.Errorf("numerology tables: fallback recommendation is empty")
	}
	for d := 1; d <= 9; d++ {
		if _, ok := t.Planets[d]; !ok {
			return fmt.Errorf("numerology tables: planet for digit %d missing", d)
		}
	}
	if len(t.Compatibility) != 9 {
		return fmt.Errorf("numerology tables: compatibility matrix has %d rows, want 9", len(t.Compatibility))
	}
	for i, row := range t.Compatibility {
		if len(row) != 9 {
			return fmt.Errorf("numerology tables: compatibility row %d has %d columns, want 9", i+1, len(row))
		}
	}
	if len(t.Bands) == 0 {
		return fmt.Errorf("numerology tables: no compatibility bands")
	}
	for i := 1; i < len(t.Bands); i++ {
		if t.Bands[i].Min >= t.Bands[i-1].Min {
			return fmt.Errorf("numerology tables: bands must be ordered by descending min")
		}
	}
	return nil
}

// DefaultTables returns the embedded tables. The result must not be modified.
func DefaultTables() *Tables {
	return defaultTables
}

// PlanetFor returns the planet assigned to a square digit.
func PlanetFor(digit int) (Planet, bool) {
	p, ok := defaultTables.Planets[digit]
	return p, ok
}
