package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/neoschema/internal/augment"
	"github.com/roach88/neoschema/internal/store"
)

// AugmentOptions holds flags for the augment command.
type AugmentOptions struct {
	*RootOptions
	Output      string
	EnableRegex bool
	NoAggregate bool
	Record      string // Build registry database
}

// AugmentResult is the JSON payload of augment.
type AugmentResult struct {
	SchemaHash string `json:"schema_hash"`
	SDL        string `json:"sdl,omitempty"`
	Output     string `json:"output,omitempty"`
	BuildID    string `json:"build_id,omitempty"`
	Recorded   bool   `json:"recorded,omitempty"`
}

// NewAugmentCommand creates the augment command.
func NewAugmentCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AugmentOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "augment <schema.graphql>",
		Short: "Generate the augmented API schema",
		Long: `Generate the full GraphQL API schema for a set of type definitions:
Where, Options, Sort, Create/Update inputs, connection types, mutation
responses and root Query and Mutation fields.

Example:
  neoschema augment schema.graphql -o api.graphql
  neoschema augment schema.graphql --enable-regex --record builds.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAugment(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the schema to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.EnableRegex, "enable-regex", false, "generate _MATCHES filters (overrides config)")
	cmd.Flags().BoolVar(&opts.NoAggregate, "no-aggregate", false, "omit aggregate queries (overrides config)")
	cmd.Flags().StringVar(&opts.Record, "record", "", "record the build in a SQLite registry")

	return cmd
}

func runAugment(ctx context.Context, opts *AugmentOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := loadConfig(formatter, opts.RootOptions)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("enable-regex") {
		cfg.EnableRegex = opts.EnableRegex
	}
	if opts.NoAggregate {
		cfg.Aggregate = false
	}

	schema, err := loadSchema(formatter, path)
	if err != nil {
		return err
	}

	sdl := augment.Print(augment.Augment(schema.Model, cfg))
	result := AugmentResult{SchemaHash: schema.Hash}

	if opts.Record != "" {
		st, err := store.Open(opts.Record)
		if err != nil {
			return formatter.Fail(ExitFailure, ErrCodeDatabase, fmt.Sprintf("open registry: %v", err), nil)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing registry", "error", closeErr)
			}
		}()

		build, inserted, err := st.RecordBuild(ctx, store.Build{
			SchemaHash: schema.Hash,
			Config:     cfg,
			SDL:        sdl,
		})
		if err != nil {
			return formatter.Fail(ExitFailure, ErrCodeDatabase, err.Error(), nil)
		}
		if !inserted && build.SDL != sdl {
			slog.Warn("recorded build differs from this run", "build", build.ID, "schema_hash", schema.Hash)
		}
		slog.Info("build recorded", "build", build.ID, "seq", build.Seq, "new", inserted)
		result.BuildID = build.ID
		result.Recorded = inserted
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(sdl), 0o644); err != nil {
			return formatter.Fail(ExitFailure, ErrCodeWriteFailed, fmt.Sprintf("write %s: %v", opts.Output, err), nil)
		}
		result.Output = opts.Output
		return formatter.Success(fmt.Sprintf("✓ Wrote %s", opts.Output), result)
	}

	result.SDL = sdl
	return formatter.Success(strings.TrimSuffix(sdl, "\n"), result)
}
