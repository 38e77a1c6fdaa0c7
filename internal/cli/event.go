package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/neoschema/internal/cypher"
)

// EventOptions holds flags for the event command.
type EventOptions struct {
	*RootOptions
	Kind string
	Var  string
}

// EventResult is the JSON payload of event.
type EventResult struct {
	Kind   string `json:"kind"`
	Cypher string `json:"cypher"`
}

// NewEventCommand creates the event command.
func NewEventCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EventOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "event",
		Short: "Print the event metadata clause for a mutation",
		Long: `Print the Cypher WITH clause that binds change-event metadata
(event kind, node id, old and new property snapshots, timestamp) for a
create, update or delete mutation.

Example:
  neoschema event --kind create --var this`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvent(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "", "create, update or delete (required)")
	cmd.Flags().StringVar(&opts.Var, "var", "this", "Cypher variable of the mutated node")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}

func runEvent(opts *EventOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := loadConfig(formatter, opts.RootOptions)
	if err != nil {
		return err
	}

	kind, err := cypher.ParseEventKind(opts.Kind)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, err.Error(), nil)
	}

	emitter := cypher.EventEmitter{Suffix: cfg.EventVariableSuffix}
	clause, err := emitter.Meta(kind, opts.Var)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, fmt.Sprintf("event metadata: %v", err), nil)
	}

	return formatter.Success(clause, EventResult{Kind: string(kind), Cypher: clause})
}
