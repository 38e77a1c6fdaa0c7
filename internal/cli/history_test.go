package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/neoschema/internal/config"
	"github.com/roach88/neoschema/internal/ir"
	"github.com/roach88/neoschema/internal/store"
	"github.com/roach88/neoschema/internal/testutil"
)

// seedRegistry records one build per config and returns the database path.
func seedRegistry(t *testing.T, configs ...config.Config) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "builds.db")

	st, err := store.Open(path, store.WithClock(testutil.NewDeterministicClock()))
	require.NoError(t, err)
	defer st.Close()

	for _, cfg := range configs {
		_, _, err := st.RecordBuild(context.Background(), store.Build{
			SchemaHash: ir.SchemaHash(testutil.MovieSDL),
			Config:     cfg,
			SDL:        "type Movie { title: String }\n",
		})
		require.NoError(t, err)
	}
	return path
}

func TestHistoryCommand_Empty(t *testing.T) {
	db := seedRegistry(t)

	out, err := execute(t, NewHistoryCommand(&RootOptions{Format: "text"}), "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No builds recorded")
}

func TestHistoryCommand_ListsNewestFirst(t *testing.T) {
	regex := config.Default()
	regex.EnableRegex = true
	db := seedRegistry(t, config.Default(), regex)

	out, err := execute(t, NewHistoryCommand(&RootOptions{Format: "text"}), "--db", db)
	require.NoError(t, err)

	hash := ir.SchemaHash(testutil.MovieSDL)[:12]
	assert.Regexp(t, `(?m)^   2  \S+  `+hash+`  2024-01-01T00:00:01Z  regex=true aggregate=true$`, out)
	assert.Regexp(t, `(?m)^   1  \S+  `+hash+`  2024-01-01T00:00:00Z  regex=false aggregate=true$`, out)
	assert.Less(t, strings.Index(out, "   2  "), strings.Index(out, "   1  "))
}

func TestHistoryCommand_JSONOutput(t *testing.T) {
	noAgg := config.Default()
	noAgg.Aggregate = false
	db := seedRegistry(t, config.Default(), noAgg)

	out, err := execute(t, NewHistoryCommand(&RootOptions{Format: "json"}), "--db", db, "--limit", "1")
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   []store.Build `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, int64(2), resp.Data[0].Seq)
	assert.False(t, resp.Data[0].Config.Aggregate)
	assert.True(t, testutil.Epoch.Add(time.Second).Equal(resp.Data[0].CreatedAt))
}

func TestHistoryCommand_LatestForSchema(t *testing.T) {
	regex := config.Default()
	regex.EnableRegex = true
	db := seedRegistry(t, config.Default(), regex)
	schema := writeFile(t, "movie.graphql", testutil.MovieSDL)

	out, err := execute(t, NewHistoryCommand(&RootOptions{Format: "text"}), "--db", db, "--schema", schema)
	require.NoError(t, err)

	hash := ir.SchemaHash(testutil.MovieSDL)[:12]
	assert.Regexp(t, `(?m)^   2  \S+  `+hash+`  2024-01-01T00:00:01Z  regex=true aggregate=true$`, out)
	assert.NotContains(t, out, "regex=false")
}

func TestHistoryCommand_LatestForSchemaJSON(t *testing.T) {
	db := seedRegistry(t, config.Default())
	schema := writeFile(t, "movie.graphql", testutil.MovieSDL)

	out, err := execute(t, NewHistoryCommand(&RootOptions{Format: "json"}), "--db", db, "--schema", schema)
	require.NoError(t, err)

	var resp struct {
		Data []store.Build `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, ir.SchemaHash(testutil.MovieSDL), resp.Data[0].SchemaHash)
}

func TestHistoryCommand_SchemaNeverBuilt(t *testing.T) {
	db := seedRegistry(t, config.Default())
	schema := writeFile(t, "genre.graphql", testutil.GenreSDL)

	out, err := execute(t, NewHistoryCommand(&RootOptions{Format: "text"}), "--db", db, "--schema", schema)
	require.NoError(t, err)
	assert.Contains(t, out, "No builds recorded for "+schema)
}

func TestHistoryCommand_SchemaNotFound(t *testing.T) {
	db := seedRegistry(t)

	out, err := execute(t, NewHistoryCommand(&RootOptions{Format: "text"}),
		"--db", db, "--schema", filepath.Join(t.TempDir(), "missing.graphql"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
	assert.Contains(t, out, "schema file not found")
}

func TestHistoryCommand_MissingDatabase(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.db")

	out, err := execute(t, NewHistoryCommand(&RootOptions{Format: "text"}), "--db", missing)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
	assert.NoFileExists(t, missing)
}

func TestHistoryCommand_RequiresDB(t *testing.T) {
	_, err := execute(t, NewHistoryCommand(&RootOptions{Format: "text"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "abc", shortHash("abc"))
	assert.Equal(t, "0123456789ab", shortHash("0123456789abcdef"))
}
