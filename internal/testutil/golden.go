// Package testutil loads golden test fixtures shared by the
// semantic-front-end packages: a source program paired with the
// diagnostic codes a full compile of it is expected to produce.
package testutil

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Fixture is one golden case: a source program and the set of
// diagnostic codes (error or warning) a driver run over it must
// produce.
type Fixture struct {
	Name       string   `yaml:"name"`
	Source     string   `yaml:"source"`
	WantCodes  []string `yaml:"want_codes"`
	WantsEntry bool     `yaml:"wants_entry"`
}

// LoadFixtures reads a YAML document containing a list of Fixtures
// from path.
func LoadFixtures(path string) ([]Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fixtures []Fixture
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, err
	}
	return fixtures, nil
}
