// Package neo4jrun checks translated Cypher against a live Neo4j server.
//
// Statements are sent prefixed with EXPLAIN in a read session, so the
// server parses and plans them without touching data.
package neo4jrun

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Verifier plans statements on a Neo4j server.
type Verifier struct {
	driver neo4j.DriverWithContext
	logger *slog.Logger
}

// New wraps an existing driver. A nil logger uses slog.Default().
func New(driver neo4j.DriverWithContext, logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{driver: driver, logger: logger}
}

// Dial connects to uri with basic auth and checks connectivity.
func Dial(ctx context.Context, uri, user, password string, logger *slog.Logger) (*Verifier, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create driver for %s: %w", uri, err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("connect to %s: %w", uri, err)
	}
	return New(driver, logger), nil
}

// Close releases the driver.
func (v *Verifier) Close(ctx context.Context) error {
	return v.driver.Close(ctx)
}

// Explain asks the server to plan statement with params bound. A Cypher
// syntax or semantic error in the statement is returned as an error.
func (v *Verifier) Explain(ctx context.Context, statement string, params map[string]any) (*Plan, error) {
	session := v.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer func() {
		if err := session.Close(ctx); err != nil {
			v.logger.Warn("close neo4j session", "error", err)
		}
	}()

	v.logger.Debug("explain", "statement", statement)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, "EXPLAIN "+statement, params)
		if err != nil {
			return nil, err
		}
		summary, err := res.Consume(ctx)
		if err != nil {
			return nil, err
		}
		return summary.Plan(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("explain: %w", err)
	}

	plan, _ := result.(neo4j.Plan)
	if plan == nil {
		return nil, fmt.Errorf("explain: server returned no plan")
	}
	return convertPlan(plan), nil
}

// Plan is a simplified execution plan tree.
type Plan struct {
	Operator    string   `json:"operator"`
	Identifiers []string `json:"identifiers,omitempty"`
	Children    []*Plan  `json:"children,omitempty"`
}

func convertPlan(p neo4j.Plan) *Plan {
	out := &Plan{
		Operator:    p.Operator(),
		Identifiers: p.Identifiers(),
	}
	for _, child := range p.Children() {
		out.Children = append(out.Children, convertPlan(child))
	}
	return out
}

// String renders the plan as an indented operator tree.
func (p *Plan) String() string {
	var b strings.Builder
	p.write(&b, 0)
	return b.String()
}

func (p *Plan) write(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(p.Operator)
	if len(p.Identifiers) > 0 {
		fmt.Fprintf(b, " (%s)", strings.Join(p.Identifiers, ", "))
	}
	b.WriteString("\n")
	for _, c := range p.Children {
		c.write(b, depth+1)
	}
}
