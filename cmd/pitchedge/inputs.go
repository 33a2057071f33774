package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pitchedge/pitchedge/internal/domain"
)

// fixturesFile is the cycle input document: a list of fixture records with
// stats bundles and an odds snapshot each.
type fixturesFile struct {
	Fixtures []domain.FixtureRecord `yaml:"fixtures"`
}

func loadFixtures(path string) ([]domain.FixtureRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures file: %w", err)
	}
	var f fixturesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures YAML: %w", err)
	}
	return f.Fixtures, nil
}
