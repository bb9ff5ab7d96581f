package harness

import (
	"errors"
	"fmt"
	"slices"

	"github.com/roach88/dxlink/internal/explorer"
	"github.com/roach88/dxlink/internal/filter"
	"github.com/roach88/dxlink/internal/rsql"
)

// Result holds the outcome of a scenario.
type Result struct {
	Scenario string       `json:"scenario"`
	Steps    []StepResult `json:"steps"`

	// Failures lists every expectation that did not hold.
	Failures []string `json:"-"`
}

// StepResult is what one step produced.
type StepResult struct {
	Kind    string   `json:"kind"`
	Entity  string   `json:"entity"`
	URL     string   `json:"url,omitempty"`
	Clauses []string `json:"clauses,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Run executes the scenario. A non-nil error means the scenario could not
// run at all; failed expectations are reported in Result.Failures.
func Run(s *Scenario) (*Result, error) {
	style, err := rsql.ParseParenStyle(s.Config.MembershipParens)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	form, err := filter.ParseUnicodeForm(s.Config.UnicodeForm)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	linker := explorer.NewLinker(explorer.NewBuilder(s.Config.BaseURL), rsql.NewCompiler(style))
	linker.Unicode = form

	result := &Result{Scenario: s.Name, Steps: make([]StepResult, 0, len(s.Steps))}
	for i := range s.Steps {
		step := &s.Steps[i]
		sr := runStep(linker, step)
		result.Steps = append(result.Steps, sr)
		for _, f := range checkStep(step, sr) {
			result.Failures = append(result.Failures, fmt.Sprintf("steps[%d]: %s", i, f))
		}
	}
	return result, nil
}

func runStep(linker *explorer.Linker, step *Step) StepResult {
	sr := StepResult{Kind: step.Kind, Entity: step.Entity}

	var err error
	switch step.Kind {
	case KindSearch:
		sr.URL, err = linker.Search(step.Entity, step.Term)
	case KindTable, KindRows:
		sr.Clauses, err = linker.Clauses(&step.Filters)
		if err != nil {
			break
		}
		if step.Kind == KindTable {
			sr.URL, err = linker.Builder.TableURL(step.Entity, sr.Clauses)
		} else {
			sr.URL, err = linker.Builder.RowsURL(step.Entity, sr.Clauses, step.Num)
		}
	}

	if err != nil {
		return StepResult{Kind: step.Kind, Entity: step.Entity, Error: errorCode(err)}
	}
	return sr
}

// checkStep returns one message per unmet expectation.
func checkStep(step *Step, sr StepResult) []string {
	var failures []string

	expect := step.Expect
	if expect == nil {
		expect = &Expect{}
	}

	if expect.Error != "" {
		if sr.Error != expect.Error {
			failures = append(failures, fmt.Sprintf("error = %q, want %q", sr.Error, expect.Error))
		}
		return failures
	}
	if sr.Error != "" {
		return append(failures, fmt.Sprintf("unexpected error %s", sr.Error))
	}

	if expect.Clauses != nil && !slices.Equal(sr.Clauses, expect.Clauses) {
		failures = append(failures, fmt.Sprintf("clauses = %q, want %q", sr.Clauses, expect.Clauses))
	}
	if expect.URL != "" && sr.URL != expect.URL {
		failures = append(failures, fmt.Sprintf("url = %q, want %q", sr.URL, expect.URL))
	}

	if step.Kind == KindTable {
		decoded, err := explorer.DecodeFilter(sr.URL)
		switch {
		case err != nil:
			failures = append(failures, fmt.Sprintf("decode %s: %v", sr.URL, err))
		case !slices.Equal(decoded, sr.Clauses):
			failures = append(failures, fmt.Sprintf("round trip = %q, want %q", decoded, sr.Clauses))
		}
	}

	return failures
}

// errorCode reduces err to its code so results compare across messages.
func errorCode(err error) string {
	var (
		fe *filter.Error
		ee *explorer.Error
	)
	switch {
	case errors.As(err, &fe):
		return string(fe.Code)
	case errors.As(err, &ee):
		return string(ee.Code)
	default:
		return err.Error()
	}
}
