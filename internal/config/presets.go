package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/dxlink/internal/explorer"
	"github.com/roach88/dxlink/internal/filter"
)

// Preset is a named, reusable link definition.
type Preset struct {
	Name    string     `yaml:"-"`
	Entity  string     `yaml:"entity"`
	Filters filter.Set `yaml:"filters"`
	Search  string     `yaml:"search"`
}

// Presets maps preset names to definitions.
type Presets map[string]Preset

type presetsFile struct {
	Presets map[string]Preset `yaml:"presets"`
}

// LoadPresets reads a presets file. An empty path yields no presets.
func LoadPresets(path string) (Presets, error) {
	if path == "" {
		return Presets{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open presets: %w", err)
	}
	defer f.Close()

	p, err := ParsePresets(f)
	if err != nil {
		return nil, fmt.Errorf("presets %s: %w", path, err)
	}
	return p, nil
}

// ParsePresets decodes a presets document. Unknown keys are rejected.
//
//	presets:
//	  female-samples:
//	    entity: umdm_sample
//	    filters:
//	      gender: female
//	      country: Australia, New Zealand
func ParsePresets(r io.Reader) (Presets, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc presetsFile
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Presets{}, nil
		}
		return nil, fmt.Errorf("decode: %w", err)
	}

	out := make(Presets, len(doc.Presets))
	for name, p := range doc.Presets {
		if name == "" {
			return nil, fmt.Errorf("preset with empty name")
		}
		if _, err := explorer.ParseEntity(p.Entity); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		p.Name = name
		out[name] = p
	}
	return out, nil
}

// Get returns the named preset.
func (p Presets) Get(name string) (Preset, error) {
	preset, ok := p[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q", name)
	}
	return preset, nil
}

// Names returns the preset names, sorted.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
