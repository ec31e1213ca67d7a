package screen

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed screens.yaml
var defaultScreens []byte

var ErrScreenNotFound = errors.New("screen not found")

type Catalog struct {
	Screens []*Screen `yaml:"screens"`
}

// Default returns the built-in products, orders and users screens.
func Default() (*Catalog, error) {
	return Load(defaultScreens)
}

func LoadFile(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read screens: %w", err)
	}
	return Load(data)
}

func Load(data []byte) (*Catalog, error) {

	c := &Catalog{}
	err := yaml.Unmarshal(data, c)
	if err != nil {
		return nil, fmt.Errorf("decode screens: %w", err)
	}

	seen := map[string]bool{}
	for _, s := range c.Screens {
		s.setDefaults()
		err := s.Validate()
		if err != nil {
			return nil, fmt.Errorf("screen '%s': %w", s.Name, err)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate screen '%s'", s.Name)
		}
		seen[s.Name] = true
	}

	return c, nil
}

func (c *Catalog) Get(name string) (*Screen, error) {
	for _, s := range c.Screens {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: '%s'", ErrScreenNotFound, name)
}

func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Screens))
	for _, s := range c.Screens {
		names = append(names, s.Name)
	}
	return names
}
