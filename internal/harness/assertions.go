package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

func assertSchema(sdl string, a Assertion) error {
	contains := strings.Contains(sdl, a.Text)
	switch {
	case a.Type == AssertSchemaContains && !contains:
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("schema contains %q", a.Text),
			Actual:   "not found",
		}
	case a.Type == AssertSchemaExcludes && contains:
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("schema does not contain %q", a.Text),
			Actual:   "found",
		}
	}
	return nil
}

func assertCypherContains(event *TraceEvent, a Assertion) error {
	if strings.Contains(event.Cypher, a.Text) {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("step %s cypher contains %q", a.Step, a.Text),
		Actual:   event.Cypher,
	}
}

func assertDropped(event *TraceEvent, a Assertion) error {
	if sameStrings(a.Paths, event.Dropped) {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("step %s drops %v", a.Step, a.Paths),
		Actual:   fmt.Sprintf("%v", event.Dropped),
	}
}

func assertParamCount(event *TraceEvent, a Assertion) error {
	if len(event.Params) == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("step %s binds %d parameter(s)", a.Step, a.Count),
		Actual:   fmt.Sprintf("%d", len(event.Params)),
	}
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertSchemaContains, AssertSchemaExcludes:
			err = assertSchema(result.SDL, assertion)
		case AssertCypherContains, AssertDropped, AssertParamCount:
			event := result.Step(assertion.Step)
			if event == nil {
				err = fmt.Errorf("assertion[%d]: step %q produced no trace", i, assertion.Step)
				break
			}
			switch assertion.Type {
			case AssertCypherContains:
				err = assertCypherContains(event, assertion)
			case AssertDropped:
				err = assertDropped(event, assertion)
			default:
				err = assertParamCount(event, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
