// Package seed loads the local dashboard dataset from YAML.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"infinium/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultSeed []byte

// Default returns the built-in dataset.
func Default() model.Dataset {
	ds, err := Parse(defaultSeed)
	if err != nil {
		panic(fmt.Sprintf("embedded seed is invalid: %v", err))
	}
	return ds
}

// Load reads a dataset file. An empty path returns the built-in dataset.
func Load(path string) (model.Dataset, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML dataset. Unknown keys are rejected.
func Parse(data []byte) (model.Dataset, error) {
	var ds model.Dataset

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil && !errors.Is(err, io.EOF) {
		return model.Dataset{}, fmt.Errorf("failed to parse seed: %w", err)
	}

	if err := validate(ds); err != nil {
		return model.Dataset{}, err
	}
	return ds, nil
}

func validate(ds model.Dataset) error {
	seen := make(map[string]bool, len(ds.Family))
	for _, m := range ds.Family {
		if m.ID == "" {
			return fmt.Errorf("family member %q has no id", m.Name)
		}
		if seen[m.ID] {
			return fmt.Errorf("duplicate family member id %q", m.ID)
		}
		seen[m.ID] = true
	}
	for _, item := range ds.Inventory {
		if item.FreshnessScore < 0 || item.FreshnessScore > 100 {
			return fmt.Errorf("inventory item %q: freshness score %d out of range", item.Name, item.FreshnessScore)
		}
	}
	return nil
}
