package physics

import (
	"fmt"
	"sort"
	"strings"
)

// Species holds the fixed properties of a kind of particle.
type Species struct {
	Name   string  `yaml:"name"`
	Mass   float64 `yaml:"mass"`
	Charge float64 `yaml:"charge"`
}

var (
	Proton = Species{Name: "Proton", Mass: 938.272, Charge: +1}
	Alpha  = Species{Name: "Alpha", Mass: 3.7273e3, Charge: +4}
)

// Presets maps lowercase species keys to their constants.
var Presets = map[string]Species{
	"proton": Proton,
	"alpha":  Alpha,
}

// NewSpecies creates a particle of the given species with the given momentum.
func NewSpecies(s Species, momentum float64, opts ...Option) (*Particle, error) {
	return New(s.Name, s.Mass, s.Charge, momentum, opts...)
}

func NewProton(momentum float64, opts ...Option) (*Particle, error) {
	return NewSpecies(Proton, momentum, opts...)
}

func NewAlpha(momentum float64, opts ...Option) (*Particle, error) {
	return NewSpecies(Alpha, momentum, opts...)
}

// Catalog resolves species by name. It starts with the presets and can be
// extended with user-defined species.
type Catalog struct {
	species map[string]Species
}

func NewCatalog() *Catalog {
	c := &Catalog{species: make(map[string]Species, len(Presets))}
	for k, s := range Presets {
		c.species[k] = s
	}
	return c
}

// Add registers a species. Negative masses are rejected.
func (c *Catalog) Add(s Species) error {
	if s.Name == "" {
		return fmt.Errorf("%w: species name is empty", ErrInvalidArgument)
	}
	if s.Mass < 0 {
		return fmt.Errorf("%w: species %q has negative mass %g", ErrInvalidArgument, s.Name, s.Mass)
	}
	c.species[strings.ToLower(s.Name)] = s
	return nil
}

func (c *Catalog) Get(name string) (Species, error) {
	s, ok := c.species[strings.ToLower(name)]
	if !ok {
		return Species{}, fmt.Errorf("unknown species: %s (available: %v)", name, c.Names())
	}
	return s, nil
}

// Names returns the registered keys in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.species))
	for name := range c.species {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
