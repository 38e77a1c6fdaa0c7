package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadAndRun(t *testing.T, path string) *Result {
	t.Helper()
	s, err := LoadScenario(path)
	require.NoError(t, err)
	result, err := Run(s)
	require.NoError(t, err)
	return result
}

// =============================================================================
// Run
// =============================================================================

func TestRun_MovieFilters(t *testing.T) {
	result := loadAndRun(t, "testdata/scenarios/movie_filters.yaml")

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Trace, 4)
	assert.Equal(t, []string{KindWhere, KindWhere, KindConnection, KindEvent}, []string{
		result.Trace[0].Kind, result.Trace[1].Kind, result.Trace[2].Kind, result.Trace[3].Kind,
	})
	assert.Contains(t, result.SDL, "type Movie {")
}

func TestRun_ConfigApplied(t *testing.T) {
	result := loadAndRun(t, "testdata/scenarios/regex_config.yaml")

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	event := result.Step("deleted")
	require.NotNil(t, event)
	assert.Contains(t, event.Cypher, "WITH m, {")
	assert.Contains(t, event.Cypher, "new: null")
}

func TestRun_Golden(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/movie_filters.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, s)
	require.NoError(t, err)
	assert.True(t, result.Pass)
}

func TestRun_ExpectMismatch(t *testing.T) {
	path := writeScenario(t, `
name: mismatch
description: wrong expectation
schema: movie.graphql
steps:
  - name: title
    type: Movie
    where: {title: Matrix}
    expect:
      cypher: this.title = $wrong
      dropped: [nothing]
`)
	result := loadAndRun(t, path)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "steps[0] title: cypher mismatch")
	assert.Contains(t, result.Errors[0], "Actual: this.title = $this_where.title")
	assert.Contains(t, result.Errors[1], "dropped mismatch")
}

func TestRun_StepErrors(t *testing.T) {
	tests := []struct {
		name    string
		step    string
		wantErr string
	}{
		{"unknown type", "{name: s, type: Studio, where: {}}", `unknown node type "Studio"`},
		{"unknown field", "{name: s, type: Movie, field: title, where: {}}", `Movie has no relationship field "title"`},
		{"unknown event", "{name: s, event: upsert}", `unknown event kind "upsert"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, "name: n\ndescription: d\nschema: movie.graphql\nsteps: ["+tt.step+"]\n")
			result := loadAndRun(t, path)

			assert.False(t, result.Pass)
			assert.Empty(t, result.Trace)
			require.Len(t, result.Errors, 1)
			assert.Contains(t, result.Errors[0], tt.wantErr)
		})
	}
}

func TestRun_InvalidSchema(t *testing.T) {
	path := writeScenario(t, "name: n\ndescription: d\nschema: bad.graphql\nsteps: [{name: a, event: create}]\n")
	bad := filepath.Join(filepath.Dir(path), "bad.graphql")
	require.NoError(t, os.WriteFile(bad, []byte("type PageInfo { id: ID }"), 0o644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	_, err = Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build schema")
}

func TestRun_EmptyFilter(t *testing.T) {
	path := writeScenario(t, `
name: empty
description: an empty filter translates to nothing
schema: movie.graphql
steps:
  - name: all
    type: Actor
    where: {}
    expect:
      cypher: ""
assertions:
  - type: param_count
    step: all
    count: 0
`)
	result := loadAndRun(t, path)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}
