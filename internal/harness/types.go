package harness

// Trace event kinds.
const (
	KindWhere      = "where"
	KindConnection = "connection"
	KindEvent      = "event"
)

// TraceEvent records what one step produced. Params are relative to
// Prefix, as the translator returned them.
type TraceEvent struct {
	Step    string         `json:"step"`
	Kind    string         `json:"kind"`
	Cypher  string         `json:"cypher"`
	Prefix  string         `json:"prefix,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
	Dropped []string       `json:"dropped,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace holds one event per step, in step order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// SDL is the augmented schema the assertions run against.
	SDL string `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Step returns the trace event of the named step, or nil.
func (r *Result) Step(name string) *TraceEvent {
	for i := range r.Trace {
		if r.Trace[i].Step == name {
			return &r.Trace[i]
		}
	}
	return nil
}
