package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/neoschema/internal/cypher"
	"github.com/roach88/neoschema/internal/neo4jrun"
)

// TranslateOptions holds flags for the translate command.
type TranslateOptions struct {
	*RootOptions
	Type        string
	Field       string // Relationship field; switches to connection filters
	Where       string // YAML or JSON filter document, "-" for stdin
	Var         string
	NodeVar     string
	RelVar      string
	Prefix      string
	EnableRegex bool
	Verify      string // Neo4j URI
	User        string
	Password    string
}

// TranslateResult is the JSON payload of translate.
type TranslateResult struct {
	Cypher    string         `json:"cypher"`
	Statement string         `json:"statement"`
	Params    map[string]any `json:"params"`
	Dropped   []string       `json:"dropped,omitempty"`
	Plan      *neo4jrun.Plan `json:"plan,omitempty"`
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "translate <schema.graphql>",
		Short: "Translate a filter document to Cypher",
		Long: `Translate a Where (or, with --field, a connection Where) filter
document into a Cypher predicate and its parameter map.

The filter document is YAML or JSON. Unknown keys are dropped and logged.
With --verify the statement is planned with EXPLAIN on a Neo4j server.

Example:
  neoschema translate schema.graphql --type Movie --where where.yaml
  neoschema translate schema.graphql --type Movie --field actors --where conn.yaml
  neoschema translate schema.graphql --type Movie --where where.yaml --verify bolt://localhost:7687`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", "", "node type the filter applies to (required)")
	cmd.Flags().StringVar(&opts.Where, "where", "", "filter document, YAML or JSON; - reads stdin (required)")
	cmd.Flags().StringVar(&opts.Field, "field", "", "relationship field for a connection filter")
	cmd.Flags().StringVar(&opts.Var, "var", "this", "Cypher variable of the node")
	cmd.Flags().StringVar(&opts.NodeVar, "node-var", "node", "Cypher variable of the connected node")
	cmd.Flags().StringVar(&opts.RelVar, "rel-var", "edge", "Cypher variable of the relationship")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "parameter prefix (default <var>_where)")
	cmd.Flags().BoolVar(&opts.EnableRegex, "enable-regex", false, "accept _MATCHES filters (overrides config)")
	cmd.Flags().StringVar(&opts.Verify, "verify", "", "Neo4j URI to EXPLAIN the statement against")
	cmd.Flags().StringVar(&opts.User, "user", "neo4j", "Neo4j user for --verify")
	cmd.Flags().StringVar(&opts.Password, "password", "", "Neo4j password for --verify (default $NEO4J_PASSWORD)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("where")

	return cmd
}

func runTranslate(ctx context.Context, opts *TranslateOptions, path string, cmd *cobra.Command) error {
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

	schema, err := loadSchema(formatter, path)
	if err != nil {
		return err
	}
	node := schema.Model.Node(opts.Type)
	if node == nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, fmt.Sprintf("unknown node type %q", opts.Type), nil)
	}

	raw, err := readFilter(opts.Where, cmd.InOrStdin())
	if errors.Is(err, fs.ErrNotExist) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("filter file not found: %s", opts.Where), nil)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, err.Error(), nil)
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = opts.Var + "_where"
	}

	result := TranslateResult{}
	tr := &cypher.Translator{
		EnableRegex: cfg.EnableRegex,
		OnDrop: func(path string) {
			slog.Warn("dropped filter key", "path", path)
			result.Dropped = append(result.Dropped, path)
		},
	}

	var params map[string]any
	if opts.Field == "" {
		result.Cypher, params = tr.CreateWhere(raw, node, opts.Var, prefix)
		result.Statement = cypher.MatchStatement(node, opts.Var, result.Cypher)
	} else {
		rf := node.RelationField(opts.Field)
		if rf == nil {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, fmt.Sprintf("%s has no relationship field %q", node.Name, opts.Field), nil)
		}
		result.Cypher, params = tr.CreateConnectionWhere(raw, rf.Target, opts.NodeVar, rf.Properties, opts.RelVar, prefix)
		result.Statement = cypher.ConnectionStatement(node, opts.Var, rf, opts.NodeVar, opts.RelVar, result.Cypher)
	}
	result.Params = cypher.BindParams(prefix, params)

	if opts.Verify != "" {
		plan, err := verify(ctx, opts, result.Statement, result.Params)
		if err != nil {
			return formatter.Fail(ExitFailure, ErrCodeVerify, err.Error(), map[string]string{"statement": result.Statement})
		}
		result.Plan = plan
	}

	text, err := translateText(result)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
	}
	return formatter.Success(text, result)
}

// readFilter decodes a YAML or JSON filter document. JSON is accepted as
// YAML. An empty document is an empty filter.
func readFilter(path string, stdin io.Reader) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read filter: %w", err)
	}

	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse filter %s: %w", path, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

func verify(ctx context.Context, opts *TranslateOptions, statement string, params map[string]any) (*neo4jrun.Plan, error) {
	password := opts.Password
	if password == "" {
		password = os.Getenv("NEO4J_PASSWORD")
	}
	v, err := neo4jrun.Dial(ctx, opts.Verify, opts.User, password, slog.Default())
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := v.Close(ctx); err != nil {
			slog.Error("error closing neo4j driver", "error", err)
		}
	}()
	return v.Explain(ctx, statement, params)
}

func translateText(r TranslateResult) (string, error) {
	params, err := json.MarshalIndent(r.Params, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode params: %w", err)
	}

	var b strings.Builder
	b.WriteString(r.Statement)
	b.WriteString("\n\nparams: ")
	b.Write(params)
	if r.Plan != nil {
		b.WriteString("\n\nplan:\n")
		b.WriteString(strings.TrimSuffix(r.Plan.String(), "\n"))
	}
	return b.String(), nil
}
