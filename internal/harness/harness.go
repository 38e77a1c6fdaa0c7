package harness

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/roach88/neoschema/internal/augment"
	"github.com/roach88/neoschema/internal/compiler"
	"github.com/roach88/neoschema/internal/config"
	"github.com/roach88/neoschema/internal/cypher"
	"github.com/roach88/neoschema/internal/ir"
)

// Connection step variables, matching the translate command defaults.
const (
	defaultVar     = "this"
	defaultNodeVar = "node"
	defaultRelVar  = "edge"
)

// Harness runs the steps of one scenario against a built model.
type Harness struct {
	model  *ir.Model
	cfg    config.Config
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Errors are returned only when the scenario cannot run at all: the
// schema or config fails to load. Step and assertion failures are
// recorded in the result.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with dropped keys logged at Debug on logger.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	data, err := os.ReadFile(scenario.Schema)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	model, err := compiler.Compile(scenario.Schema, string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}

	cfg := config.Default()
	if scenario.Config != "" {
		cfg, err = config.Load(scenario.Config)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	h := &Harness{model: model, cfg: cfg, logger: logger}

	result := NewResult()
	result.SDL = augment.Print(augment.Augment(model, cfg))

	for i, step := range scenario.Steps {
		event, err := h.runStep(step)
		if err != nil {
			result.AddError(fmt.Sprintf("steps[%d] %s: %v", i, step.Name, err))
			continue
		}
		result.Trace = append(result.Trace, event)

		if step.Expect != nil {
			for _, msg := range checkExpect(step, event) {
				result.AddError(fmt.Sprintf("steps[%d] %s: %s", i, step.Name, msg))
			}
		}
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

func (h *Harness) runStep(step Step) (TraceEvent, error) {
	varName := step.Var
	if varName == "" {
		varName = defaultVar
	}
	event := TraceEvent{Step: step.Name}

	if step.Event != "" {
		kind, err := cypher.ParseEventKind(step.Event)
		if err != nil {
			return event, err
		}
		emitter := cypher.EventEmitter{Suffix: h.cfg.EventVariableSuffix}
		clause, err := emitter.Meta(kind, varName)
		if err != nil {
			return event, err
		}
		event.Kind = KindEvent
		event.Cypher = clause
		return event, nil
	}

	node := h.model.Node(step.Type)
	if node == nil {
		return event, fmt.Errorf("unknown node type %q", step.Type)
	}

	event.Prefix = varName + "_where"
	tr := &cypher.Translator{
		EnableRegex: h.cfg.EnableRegex,
		OnDrop: func(path string) {
			h.logger.Debug("dropped filter key", "step", step.Name, "path", path)
			event.Dropped = append(event.Dropped, path)
		},
	}

	if step.Field == "" {
		event.Kind = KindWhere
		event.Cypher, event.Params = tr.CreateWhere(step.Where, node, varName, event.Prefix)
		return event, nil
	}

	rf := node.RelationField(step.Field)
	if rf == nil {
		return event, fmt.Errorf("%s has no relationship field %q", node.Name, step.Field)
	}
	event.Kind = KindConnection
	event.Cypher, event.Params = tr.CreateConnectionWhere(step.Where, rf.Target, defaultNodeVar, rf.Properties, defaultRelVar, event.Prefix)
	return event, nil
}

// checkExpect compares a step's output with its expect clause.
func checkExpect(step Step, event TraceEvent) []string {
	var errs []string
	if event.Cypher != step.Expect.Cypher {
		errs = append(errs, fmt.Sprintf("cypher mismatch\n  Expected: %s\n  Actual: %s", step.Expect.Cypher, event.Cypher))
	}
	if step.Expect.Dropped != nil && !sameStrings(step.Expect.Dropped, event.Dropped) {
		errs = append(errs, fmt.Sprintf("dropped mismatch: expected %v, got %v", step.Expect.Dropped, event.Dropped))
	}
	return errs
}

// sameStrings compares two string lists ignoring order.
func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}
