package harness

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/roach88/matcha/internal/dialect"
	"github.com/roach88/matcha/internal/engine"
	"github.com/roach88/matcha/internal/value"
)

// CaseResult is the observed outcome of one case, plus the comparison
// against its Want.
type CaseResult struct {
	Input       string   `json:"input"`
	Kind        string   `json:"kind"`
	Matched     bool     `json:"matched"`
	Value       string   `json:"value"`
	Synthesized string   `json:"synthesized"`
	Progress    int      `json:"progress"`
	Furthest    int      `json:"furthest"`
	Pass        bool     `json:"pass"`
	Failures    []string `json:"failures,omitempty"`
}

// Result is the outcome of a whole scenario.
type Result struct {
	Scenario string       `json:"scenario"`
	Cases    []CaseResult `json:"cases"`
	Passed   bool         `json:"passed"`
}

// Run executes every case of the scenario through the engine. Only a
// malformed scenario (bad rules, bad input encoding) is an error;
// expectation mismatches land in the per-case Failures.
func Run(s *Scenario) (*Result, error) {
	rules, err := dialect.Read(s.Rules)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: reading rules: %w", s.Name, err)
	}

	result := &Result{Scenario: s.Name, Passed: true}
	for i, c := range s.Cases {
		kind := c.Kind
		if kind == "" {
			kind = "text"
		}
		input, err := caseInput(c.Input, kind)
		if err != nil {
			return nil, fmt.Errorf("scenario %s case %d: %w", s.Name, i, err)
		}

		var opts []engine.Option
		if s.CaseSensitive {
			opts = append(opts, engine.CaseSensitive())
		}
		outcome, err := engine.Parse(input, rules, opts...)
		if err != nil {
			return nil, fmt.Errorf("scenario %s case %d: %w", s.Name, i, err)
		}

		cr := CaseResult{
			Input:       c.Input,
			Kind:        kind,
			Matched:     outcome.Matched,
			Value:       value.Mold(outcome.Value),
			Synthesized: value.Mold(outcome.Synthesized),
			Progress:    outcome.Progress,
			Furthest:    outcome.Furthest,
		}
		cr.Failures = compare(c.Want, cr)
		cr.Pass = len(cr.Failures) == 0
		if !cr.Pass {
			result.Passed = false
		}
		result.Cases = append(result.Cases, cr)
	}
	return result, nil
}

func caseInput(text, kind string) (value.Value, error) {
	switch kind {
	case "text":
		return value.Text(text), nil
	case "block":
		block, err := dialect.Read(text)
		if err != nil {
			return nil, fmt.Errorf("reading block input: %w", err)
		}
		return block, nil
	case "binary":
		data, err := hex.DecodeString(strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("binary input must be hex: %w", err)
		}
		return value.Binary(data), nil
	default:
		return nil, fmt.Errorf("invalid case kind %q", kind)
	}
}

func compare(want Want, got CaseResult) []string {
	var failures []string
	if want.Matched != got.Matched {
		failures = append(failures, fmt.Sprintf("matched: want %v, got %v", want.Matched, got.Matched))
	}
	if want.Value != nil && *want.Value != got.Value {
		failures = append(failures, fmt.Sprintf("value: want %s, got %s", *want.Value, got.Value))
	}
	if want.Synthesized != nil && *want.Synthesized != got.Synthesized {
		failures = append(failures, fmt.Sprintf("synthesized: want %s, got %s", *want.Synthesized, got.Synthesized))
	}
	if want.Progress != nil && *want.Progress != got.Progress {
		failures = append(failures, fmt.Sprintf("progress: want %d, got %d", *want.Progress, got.Progress))
	}
	if want.Furthest != nil && *want.Furthest != got.Furthest {
		failures = append(failures, fmt.Sprintf("furthest: want %d, got %d", *want.Furthest, got.Furthest))
	}
	return failures
}
