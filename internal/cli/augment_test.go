package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/neoschema/internal/ir"
	"github.com/roach88/neoschema/internal/testutil"
)

type augmentResponse struct {
	Status string        `json:"status"`
	Data   AugmentResult `json:"data"`
	Error  *CLIError     `json:"error"`
}

func runAugmentJSON(t *testing.T, args ...string) augmentResponse {
	t.Helper()
	out, err := execute(t, NewAugmentCommand(&RootOptions{Format: "json"}), args...)
	require.NoError(t, err)

	var resp augmentResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)
	return resp
}

// =============================================================================
// augment
// =============================================================================

func TestAugmentCommand_PrintsSchema(t *testing.T) {
	path := writeFile(t, "schema.graphql", testutil.MovieSDL)

	out, err := execute(t, NewAugmentCommand(&RootOptions{Format: "text"}), path)
	require.NoError(t, err)

	assert.Contains(t, out, "type Movie {")
	assert.Contains(t, out, "input MovieWhere {")
	assert.Contains(t, out, "interface ActedIn {")
	assert.Contains(t, out, "type Query {")
	assert.Contains(t, out, "moviesAggregate")
	assert.NotContains(t, out, "title_MATCHES")
}

func TestAugmentCommand_EnableRegex(t *testing.T) {
	path := writeFile(t, "schema.graphql", testutil.MovieSDL)

	resp := runAugmentJSON(t, path, "--enable-regex")
	assert.Contains(t, resp.Data.SDL, "title_MATCHES")
}

func TestAugmentCommand_NoAggregate(t *testing.T) {
	path := writeFile(t, "schema.graphql", testutil.MovieSDL)

	resp := runAugmentJSON(t, path, "--no-aggregate")
	assert.NotContains(t, resp.Data.SDL, "moviesAggregate")
	assert.NotContains(t, resp.Data.SDL, "MovieAggregateSelection")
}

func TestAugmentCommand_ConfigFile(t *testing.T) {
	schema := writeFile(t, "schema.graphql", testutil.MovieSDL)
	cfg := writeFile(t, "neoschema.cue", "enableRegex: true\naggregate: false\n")

	out, err := execute(t, NewAugmentCommand(&RootOptions{Format: "text", ConfigPath: cfg}), schema)
	require.NoError(t, err)
	assert.Contains(t, out, "title_MATCHES")
	assert.NotContains(t, out, "moviesAggregate")
}

func TestAugmentCommand_InvalidConfig(t *testing.T) {
	schema := writeFile(t, "schema.graphql", testutil.MovieSDL)
	cfg := writeFile(t, "neoschema.cue", "enableRegex: \"yes\"\n")

	out, err := execute(t, NewAugmentCommand(&RootOptions{Format: "text", ConfigPath: cfg}), schema)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E008]")
}

func TestAugmentCommand_WritesOutputFile(t *testing.T) {
	schema := writeFile(t, "schema.graphql", testutil.MovieSDL)
	target := filepath.Join(t.TempDir(), "api.graphql")

	out, err := execute(t, NewAugmentCommand(&RootOptions{Format: "text"}), schema, "-o", target)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Wrote "+target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "type MovieActorsConnection {")
}

func TestAugmentCommand_JSONOutput(t *testing.T) {
	path := writeFile(t, "schema.graphql", testutil.MovieSDL)

	resp := runAugmentJSON(t, path)
	assert.Equal(t, ir.SchemaHash(testutil.MovieSDL), resp.Data.SchemaHash)
	assert.Contains(t, resp.Data.SDL, "type Mutation {")
	assert.Empty(t, resp.Data.BuildID)
}

func TestAugmentCommand_RecordsBuild(t *testing.T) {
	schema := writeFile(t, "schema.graphql", testutil.MovieSDL)
	db := filepath.Join(t.TempDir(), "builds.db")

	first := runAugmentJSON(t, schema, "--record", db)
	assert.NotEmpty(t, first.Data.BuildID)
	assert.True(t, first.Data.Recorded)

	second := runAugmentJSON(t, schema, "--record", db)
	assert.Equal(t, first.Data.BuildID, second.Data.BuildID)
	assert.False(t, second.Data.Recorded, "same schema and config is the same build")

	third := runAugmentJSON(t, schema, "--record", db, "--enable-regex")
	assert.NotEqual(t, first.Data.BuildID, third.Data.BuildID)
	assert.True(t, third.Data.Recorded)
}

func TestAugmentCommand_InvalidSchema(t *testing.T) {
	path := writeFile(t, "schema.graphql", "type Connection { id: ID }")

	out, err := execute(t, NewAugmentCommand(&RootOptions{Format: "text"}), path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E220]")
}
