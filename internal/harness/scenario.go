package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Schema is the type definition file. Relative paths are resolved
	// against the scenario file.
	Schema string `yaml:"schema"`

	// Config is an optional neoschema.cue file, resolved like Schema.
	Config string `yaml:"config,omitempty"`

	// Steps run in order, one trace event each.
	Steps []Step `yaml:"steps"`

	// Assertions validate the augmented schema and the trace.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step translates one filter or emits one event metadata clause.
type Step struct {
	Name string `yaml:"name"`

	// Type is the node type the filter applies to.
	Type string `yaml:"type,omitempty"`

	// Field selects a relationship field; Where is then a connection Where.
	Field string `yaml:"field,omitempty"`

	// Var is the Cypher variable of the node. Defaults to "this".
	Var string `yaml:"var,omitempty"`

	Where map[string]any `yaml:"where,omitempty"`

	// Event, when set, makes this an event metadata step (create, update
	// or delete) and Type, Field and Where are ignored.
	Event string `yaml:"event,omitempty"`

	// Expect, when set, is checked against what the step produced.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect is the exact output of a step.
type Expect struct {
	Cypher  string   `yaml:"cypher"`
	Dropped []string `yaml:"dropped,omitempty"`
}

// Assertion validates the augmented schema or the trace.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Step names the step for cypher_contains and dropped.
	Step string `yaml:"step,omitempty"`

	// Text is the substring for schema_contains, schema_excludes and
	// cypher_contains.
	Text string `yaml:"text,omitempty"`

	// Paths are the expected dropped keys, in any order.
	Paths []string `yaml:"paths,omitempty"`

	// Count is the expected number of parameters bound by Step.
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertSchemaContains = "schema_contains"
	AssertSchemaExcludes = "schema_excludes"
	AssertCypherContains = "cypher_contains"
	AssertDropped        = "dropped"
	AssertParamCount     = "param_count"
)

// LoadScenario reads and parses a scenario YAML file, resolving Schema
// and Config relative to the file. Unknown fields are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Dir(path)
	scenario.Schema = resolve(base, scenario.Schema)
	scenario.Config = resolve(base, scenario.Config)

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Schema == "" {
		return fmt.Errorf("schema is required")
	}
	if _, err := os.Stat(s.Schema); os.IsNotExist(err) {
		return fmt.Errorf("schema file not found: %s", s.Schema)
	}
	if s.Config != "" {
		if _, err := os.Stat(s.Config); os.IsNotExist(err) {
			return fmt.Errorf("config file not found: %s", s.Config)
		}
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	names := make(map[string]bool, len(s.Steps))
	for i, step := range s.Steps {
		if step.Name == "" {
			return fmt.Errorf("steps[%d]: name is required", i)
		}
		if names[step.Name] {
			return fmt.Errorf("steps[%d]: duplicate step name %q", i, step.Name)
		}
		names[step.Name] = true

		if step.Event != "" {
			continue
		}
		if step.Type == "" {
			return fmt.Errorf("steps[%d]: type is required", i)
		}
		if step.Where == nil {
			return fmt.Errorf("steps[%d]: where is required (use {} for an empty filter)", i)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion, names); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, steps map[string]bool) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertSchemaContains, AssertSchemaExcludes:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
		return nil
	case AssertCypherContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
	case AssertDropped:
	case AssertParamCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	if a.Step == "" {
		return fmt.Errorf("assertions[%d]: step is required for %s", index, a.Type)
	}
	if !steps[a.Step] {
		return fmt.Errorf("assertions[%d]: unknown step %q", index, a.Step)
	}
	return nil
}
