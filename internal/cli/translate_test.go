package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/neoschema/internal/testutil"
)

type translateResponse struct {
	Status string          `json:"status"`
	Data   TranslateResult `json:"data"`
	Error  *CLIError       `json:"error"`
}

func runTranslateJSON(t *testing.T, args ...string) translateResponse {
	t.Helper()
	out, err := execute(t, NewTranslateCommand(&RootOptions{Format: "json"}), args...)
	require.NoError(t, err)

	var resp translateResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)
	return resp
}

// =============================================================================
// translate: node filters
// =============================================================================

func TestTranslateCommand_WhereYAML(t *testing.T) {
	schema := writeFile(t, "schema.graphql", testutil.MovieSDL)
	where := writeFile(t, "where.yaml", "title: Matrix\n")

	out, err := execute(t, NewTranslateCommand(&RootOptions{Format: "text"}),
		schema, "--type", "Movie", "--where", where)
	require.NoError(t, err)

	assert.Contains(t, out, "MATCH (this:Movie)\nWHERE this.title = $this_where.title\nRETURN this")
	assert.Contains(t, out, "params: {")
	assert.Contains(t, out, `"title": "Matrix"`)
}

func TestTranslateCommand_WhereJSON(t *testing.T) {
	schema := writeFile(t, "schema.graphql", testutil.MovieSDL)
	where := writeFile(t, "where.json", `{"released_GT": 1999, "title_IN": ["Heat", "Ronin"]}`)

	resp := runTranslateJSON(t, schema, "--type", "Movie", "--where", where)

	assert.Contains(t, resp.Data.Cypher, "this.released > $this_where.released_GT")
	assert.Contains(t, resp.Data.Cypher, "this.title IN $this_where.title_IN")
	require.Contains(t, resp.Data.Params, "this_where")
	params, ok := resp.Data.Params["this_where"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1999), params["released_GT"])
	assert.Equal(t, []any{"Heat", "Ronin"}, params["title_IN"])
}

func TestTranslateCommand_CustomVarAndPrefix(t *testing.T) {
	schema := writeFile(t, "schema.graphql", testutil.MovieSDL)
	where := writeFile(t, "where.yaml", "title: Matrix\n")

	resp := runTranslateJSON(t, schema, "--type", "Movie", "--where", where,
		"--var", "m", "--prefix", "args.where")

	assert.Equal(t, "m.title = $args.where.title", resp.Data.Cypher)
	assert.Equal(t, map[string]any{
		"args": map[string]any{
			"where": map[string]any{"title": "Matrix"},
		},
	}, resp.Data.Params)
}

func TestTranslateCommand_Stdin(t *testing.T) {
	schema := writeFile(t, "schema.graphql", testutil.MovieSDL)

	cmd := NewTranslateCommand(&RootOptions{Format: "text"})
	cmd.SetIn(strings.NewReader("name_STARTS_WITH: Kea\n"))
	out, err := execute(t, cmd, schema, "--type", "Actor", "--where", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "this.name STARTS WITH $this_where.name_STARTS_WITH")
}

func TestTranslateCommand_EmptyFilter(t *testing.T) {
	schema := writeFile(t, "schema.graphql", testutil.MovieSDL)
	where := writeFile(t, "where.yaml", "")

	resp := runTranslateJSON(t, schema, "--type", "Movie", "--where", where)
	assert.Equal(t, "", resp.Data.Cypher)
	assert.Equal(t, "MATCH (this:Movie)\nRETURN this", resp.Data.Statement)
}

func TestTranslateCommand_DroppedKeys(t *testing.T) {
	schema := writeFile(t, "schema.graphql", testutil.MovieSDL)
	where := writeFile(t, "where.yaml", "title: Matrix\nbogus: 1\ntitle_MATCHES: \"M.*\"\n")

	resp := runTranslateJSON(t, schema, "--type", "Movie", "--where", where)
	assert.Equal(t, "this.title = $this_where.title", resp.Data.Cypher)
	assert.ElementsMatch(t, []string{"bogus", "title_MATCHES"}, resp.Data.Dropped)
}

func TestTranslateCommand_EnableRegex(t *testing.T) {
	schema := writeFile(t, "schema.graphql", testutil.MovieSDL)
	where := writeFile(t, "where.yaml", "title_MATCHES: \"(?i)mat.*\"\n")

	resp := runTranslateJSON(t, schema, "--type", "Movie", "--where", where, "--enable-regex")
	assert.Equal(t, "this.title =~ $this_where.title_MATCHES", resp.Data.Cypher)
	assert.Empty(t, resp.Data.Dropped)
}

// =============================================================================
// translate: connection filters
// =============================================================================

func TestTranslateCommand_ConnectionField(t *testing.T) {
	schema := writeFile(t, "schema.graphql", testutil.MovieSDL)
	where := writeFile(t, "conn.yaml", "node:\n  name: Keanu\nedge:\n  role: Neo\n")

	resp := runTranslateJSON(t, schema, "--type", "Movie", "--field", "actors", "--where", where)

	assert.Contains(t, resp.Data.Cypher, "node.name = $this_where.node.name")
	assert.Contains(t, resp.Data.Cypher, "edge.role = $this_where.edge.role")
	assert.True(t, strings.HasPrefix(resp.Data.Statement,
		"MATCH (this:Movie)\nMATCH (this)<-[edge:ACTED_IN]-(node:Actor)\nWHERE "))
}

func TestTranslateCommand_ConnectionVariables(t *testing.T) {
	schema := writeFile(t, "schema.graphql", testutil.MovieSDL)
	where := writeFile(t, "conn.yaml", "node:\n  title: Heat\n")

	resp := runTranslateJSON(t, schema, "--type", "Actor", "--field", "movies", "--where", where,
		"--node-var", "m", "--rel-var", "r")

	assert.Equal(t, "m.title = $this_where.node.title", resp.Data.Cypher)
	assert.Contains(t, resp.Data.Statement, "MATCH (this)-[r:ACTED_IN]->(m:Movie)")
}

// =============================================================================
// translate: errors
// =============================================================================

func TestTranslateCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args func(schema, where string) []string
		code string
		exit int
	}{
		{
			name: "unknown type",
			args: func(schema, where string) []string {
				return []string{schema, "--type", "Studio", "--where", where}
			},
			code: ErrCodeInvalidInput,
			exit: ExitCommandError,
		},
		{
			name: "unknown relationship field",
			args: func(schema, where string) []string {
				return []string{schema, "--type", "Movie", "--field", "title", "--where", where}
			},
			code: ErrCodeInvalidInput,
			exit: ExitCommandError,
		},
		{
			name: "missing filter file",
			args: func(schema, where string) []string {
				return []string{schema, "--type", "Movie", "--where", filepath.Join(filepath.Dir(where), "nope.yaml")}
			},
			code: ErrCodeNotFound,
			exit: ExitCommandError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := writeFile(t, "schema.graphql", testutil.MovieSDL)
			where := writeFile(t, "where.yaml", "title: Matrix\n")

			out, err := execute(t, NewTranslateCommand(&RootOptions{Format: "json"}), tt.args(schema, where)...)
			require.Error(t, err)
			assert.Equal(t, tt.exit, GetExitCode(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestTranslateCommand_MalformedFilter(t *testing.T) {
	schema := writeFile(t, "schema.graphql", testutil.MovieSDL)
	where := writeFile(t, "where.yaml", "- just\n- a list\n")

	out, err := execute(t, NewTranslateCommand(&RootOptions{Format: "text"}),
		schema, "--type", "Movie", "--where", where)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E009]")
}

func TestTranslateCommand_RequiredFlags(t *testing.T) {
	schema := writeFile(t, "schema.graphql", testutil.MovieSDL)

	_, err := execute(t, NewTranslateCommand(&RootOptions{Format: "text"}), schema, "--type", "Movie")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "where")
}
