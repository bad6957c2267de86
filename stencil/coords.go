package stencil

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Coords names the coordinate system the stencils are generated in. The
// spatial variables are the ones derivatives are taken with respect to;
// the time variable is recognized during parsing but never differenced;
// the step symbol is the grid spacing introduced by the substitution.
type Coords struct {
	Spatial []string `yaml:"spatial"`
	Time    string   `yaml:"time"`
	Step    string   `yaml:"step"`
}

// Spherical is the default coordinate system: (r, theta, phi) plus time t,
// with grid spacing h.
func Spherical() Coords {
	return Coords{
		Spatial: []string{"r", "theta", "phi"},
		Time:    "t",
		Step:    "h",
	}
}

// LoadCoords reads a coordinate-system description from a YAML file.
// Missing time or step fields fall back to the spherical defaults.
func LoadCoords(path string) (Coords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Coords{}, fmt.Errorf("stencil: read coords file: %w", err)
	}
	var c Coords
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Coords{}, fmt.Errorf("stencil: parse coords file %s: %w", path, err)
	}
	if c.Time == "" {
		c.Time = "t"
	}
	if c.Step == "" {
		c.Step = "h"
	}
	if err := c.Validate(); err != nil {
		return Coords{}, err
	}
	return c, nil
}

// Validate checks the invariants the generator relies on: at least one
// spatial variable, no duplicates, and a step symbol distinct from every
// coordinate.
func (c Coords) Validate() error {
	if len(c.Spatial) == 0 {
		return fmt.Errorf("stencil: coordinate system has no spatial variables")
	}
	seen := map[string]bool{}
	for _, v := range c.Spatial {
		if v == "" {
			return fmt.Errorf("stencil: empty spatial variable name")
		}
		if seen[v] {
			return fmt.Errorf("stencil: duplicate spatial variable %q", v)
		}
		seen[v] = true
		if v == c.Step {
			return fmt.Errorf("stencil: step symbol %q collides with a spatial variable", c.Step)
		}
	}
	if c.Time == c.Step {
		return fmt.Errorf("stencil: step symbol %q collides with the time variable", c.Step)
	}
	return nil
}
