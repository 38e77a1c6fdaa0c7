package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/neoschema/internal/ir"
	"github.com/roach88/neoschema/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	Schema   string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded schema builds",
		Long: `List the builds recorded with 'augment --record', newest first.

With --schema, show only the latest build of that type definition file,
whatever config it was built with.

Examples:
  neoschema history --db builds.db --limit 10
  neoschema history --db builds.db --schema schema.graphql`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the build registry (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of builds; 0 lists all")
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "show the latest build of this schema file")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(ctx context.Context, opts *HistoryOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	// Opening creates the file; a missing registry is a user error.
	if _, err := os.Stat(opts.Database); errors.Is(err, fs.ErrNotExist) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("database not found: %s", opts.Database), nil)
	}

	var schemaHash string
	if opts.Schema != "" {
		data, err := os.ReadFile(opts.Schema)
		if errors.Is(err, fs.ErrNotExist) {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("schema file not found: %s", opts.Schema), nil)
		}
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("read schema: %v", err), nil)
		}
		schemaHash = ir.SchemaHash(string(data))
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeDatabase, fmt.Sprintf("open registry: %v", err), nil)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing registry", "error", closeErr)
		}
	}()

	if schemaHash != "" {
		return latestBuild(ctx, formatter, st, opts.Schema, schemaHash)
	}

	builds, err := st.ListBuilds(ctx, opts.Limit)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeDatabase, err.Error(), nil)
	}

	return formatter.Success(historyText(builds), builds)
}

func latestBuild(ctx context.Context, formatter *OutputFormatter, st *store.Store, path, schemaHash string) error {
	build, err := st.LatestByHash(ctx, schemaHash)
	if errors.Is(err, store.ErrNotFound) {
		return formatter.Success(fmt.Sprintf("No builds recorded for %s", path), []store.Build{})
	}
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeDatabase, err.Error(), nil)
	}
	builds := []store.Build{build}
	return formatter.Success(historyText(builds), builds)
}

func historyText(builds []store.Build) string {
	if len(builds) == 0 {
		return "No builds recorded"
	}
	var b strings.Builder
	for i, build := range builds {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%4d  %s  %s  %s  regex=%t aggregate=%t",
			build.Seq,
			build.ID,
			shortHash(build.SchemaHash),
			build.CreatedAt.Format(time.RFC3339),
			build.Config.EnableRegex,
			build.Config.Aggregate,
		)
	}
	return b.String()
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
