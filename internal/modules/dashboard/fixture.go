package dashboard

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	"github.com/khetguard/khetguard/internal/modules/dashboard/view"
	"gopkg.in/yaml.v3"
)

//go:embed fixture.yaml
var fixtureYAML []byte

// LoadFixture parses the embedded mock farm.
func LoadFixture() (view.Fixture, error) {
	return ParseFixture(fixtureYAML)
}

// ParseFixture decodes a fixture document. Unknown keys are rejected so a typo
// in the mock data fails at start-up instead of rendering an empty card.
func ParseFixture(data []byte) (view.Fixture, error) {
	var f view.Fixture
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return view.Fixture{}, fmt.Errorf("failed to parse dashboard fixture: %w", err)
	}
	if len(f.Cameras) == 0 {
		return view.Fixture{}, errors.New("dashboard fixture has no cameras")
	}
	seen := make(map[string]bool, len(f.Cameras))
	for _, cam := range f.Cameras {
		if cam.ID == "" {
			return view.Fixture{}, fmt.Errorf("camera %q has no id", cam.Name)
		}
		if seen[cam.ID] {
			return view.Fixture{}, fmt.Errorf("duplicate camera id %q", cam.ID)
		}
		seen[cam.ID] = true
	}
	return f, nil
}
