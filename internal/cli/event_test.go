package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventCommand_Kinds(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{"create", `event: "create"`},
		{"update", `event: "update"`},
		{"delete", `event: "delete"`},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			out, err := execute(t, NewEventCommand(&RootOptions{Format: "text"}), "--kind", tt.kind)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, "id: id(this)")
			assert.Contains(t, out, "AS this_meta")
		})
	}
}

func TestEventCommand_JSONOutput(t *testing.T) {
	out, err := execute(t, NewEventCommand(&RootOptions{Format: "json"}), "--kind", "create", "--var", "m")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   EventResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "create", resp.Data.Kind)
	assert.Contains(t, resp.Data.Cypher, "WITH m, {")
	assert.Contains(t, resp.Data.Cypher, "AS m_meta")
}

func TestEventCommand_ConfigSuffix(t *testing.T) {
	cfg := writeFile(t, "neoschema.cue", "eventVariableSuffix: \"event\"\n")

	out, err := execute(t, NewEventCommand(&RootOptions{Format: "text", ConfigPath: cfg}), "--kind", "delete")
	require.NoError(t, err)
	assert.Contains(t, out, "AS this_event")
}

func TestEventCommand_UnknownKind(t *testing.T) {
	out, err := execute(t, NewEventCommand(&RootOptions{Format: "text"}), "--kind", "upsert")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E009]")
	assert.Contains(t, out, "upsert")
}

func TestEventCommand_EmptyVar(t *testing.T) {
	out, err := execute(t, NewEventCommand(&RootOptions{Format: "text"}), "--kind", "create", "--var", "")
	require.Error(t, err)
	assert.Contains(t, out, "Error [E009]")
}

func TestEventCommand_RequiresKind(t *testing.T) {
	_, err := execute(t, NewEventCommand(&RootOptions{Format: "text"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kind")
}
