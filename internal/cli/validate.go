package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ValidationResult is the JSON payload of a successful validate.
type ValidationResult struct {
	Valid         bool     `json:"valid"`
	SchemaHash    string   `json:"schema_hash"`
	Nodes         []string `json:"nodes"`
	Relationships []string `json:"relationships,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <schema.graphql>",
		Short: "Validate type definitions without generating output",
		Long: `Validate GraphQL type definitions for Neo4j.

Checks directive placement, reserved names, relationship targets and
properties interfaces. Stops at the first error; exit code 2 when the
schema is invalid.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	schema, err := loadSchema(formatter, path)
	if err != nil {
		return err
	}

	result := ValidationResult{
		Valid:      true,
		SchemaHash: schema.Hash,
		Nodes:      []string{},
	}
	for _, n := range schema.Model.Nodes {
		result.Nodes = append(result.Nodes, n.Name)
	}
	for _, r := range schema.Model.Relationships {
		result.Relationships = append(result.Relationships, r.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✓ Schema valid: %d node(s), %d relationship properties type(s)", len(result.Nodes), len(result.Relationships))
	if opts.Verbose {
		fmt.Fprintf(&b, "\n  nodes: %s", strings.Join(result.Nodes, ", "))
		if len(result.Relationships) > 0 {
			fmt.Fprintf(&b, "\n  relationships: %s", strings.Join(result.Relationships, ", "))
		}
	}
	return formatter.Success(b.String(), result)
}
