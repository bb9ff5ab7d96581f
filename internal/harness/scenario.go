package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/dxlink/internal/filter"
)

// Step kinds.
const (
	KindTable  = "table"
	KindSearch = "search"
	KindRows   = "rows"
)

// Scenario defines a link conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config selects the link builder settings.
	Config Config `yaml:"config"`

	// Steps are run in order against the same builder.
	Steps []Step `yaml:"steps"`
}

// Config mirrors the link-related configuration keys.
type Config struct {
	BaseURL          string `yaml:"base_url"`
	MembershipParens string `yaml:"membership_parens"`
	UnicodeForm      string `yaml:"unicode_form"`
}

// Step builds one link.
type Step struct {
	// Kind is table, search or rows.
	Kind string `yaml:"kind"`

	Entity string `yaml:"entity"`

	// Filters is the raw Filter Set (table and rows).
	Filters filter.Set `yaml:"filters"`

	// Term is the search-all term (search).
	Term string `yaml:"term"`

	// Num limits rows (rows).
	Num int `yaml:"num"`

	// Expect is checked against the step result. Nil only checks the
	// round trip.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect describes the expected outcome of a step.
type Expect struct {
	// Clauses is the exact expected clause list.
	Clauses []string `yaml:"clauses,omitempty"`

	// URL is the exact expected link.
	URL string `yaml:"url,omitempty"`

	// Error is the expected error code. When set the step must fail.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Entity == "" {
			return fmt.Errorf("steps[%d]: entity is required", i)
		}
		switch step.Kind {
		case KindTable, KindRows:
			if step.Term != "" {
				return fmt.Errorf("steps[%d]: term is only valid for %s", i, KindSearch)
			}
		case KindSearch:
			if step.Filters.Len() > 0 {
				return fmt.Errorf("steps[%d]: filters are not valid for %s", i, KindSearch)
			}
		case "":
			return fmt.Errorf("steps[%d]: kind is required", i)
		default:
			return fmt.Errorf("steps[%d]: unknown kind %q", i, step.Kind)
		}
		if step.Num < 0 {
			return fmt.Errorf("steps[%d]: num must be non-negative", i)
		}
		if e := step.Expect; e != nil && e.Error != "" && (e.URL != "" || len(e.Clauses) > 0) {
			return fmt.Errorf("steps[%d].expect: error excludes url and clauses", i)
		}
	}

	return nil
}
