// Package harness runs conformance scenarios against the engine.
// Scenarios are YAML files: one rule block in dialect notation plus a
// set of inputs with expected outcomes. Files are validated against an
// embedded CUE schema before decoding, and outcomes can be snapshotted
// to golden files.
package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario; it also names the golden
	// file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Rules is the rule block, in dialect notation.
	Rules string `yaml:"rules"`

	// CaseSensitive turns off case folding for the whole scenario.
	CaseSensitive bool `yaml:"case_sensitive,omitempty"`

	// Cases are the inputs to run and their expected outcomes.
	Cases []Case `yaml:"cases"`
}

// Case is one input plus its expected outcome.
type Case struct {
	// Input is the raw input: text, a block in dialect notation, or hex
	// for binary, according to Kind.
	Input string `yaml:"input"`

	// Kind selects the input series kind. Defaults to "text".
	Kind string `yaml:"kind,omitempty"`

	// Want is the expected outcome.
	Want Want `yaml:"want"`
}

// Want holds the expected outcome fields. String fields compare against
// the molded form; nil pointer fields are not checked.
type Want struct {
	Matched     bool    `yaml:"matched"`
	Value       *string `yaml:"value,omitempty"`
	Synthesized *string `yaml:"synthesized,omitempty"`
	Progress    *int    `yaml:"progress,omitempty"`
	Furthest    *int    `yaml:"furthest,omitempty"`
}

// LoadScenario reads, schema-validates, and decodes one scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	if err := ValidateScenarioYAML(path, data); err != nil {
		return nil, err
	}

	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding scenario %s: %w", path, err)
	}
	return &s, nil
}
