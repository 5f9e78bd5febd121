package anthropic

import (
	"context"
	"encoding/json"
	"testing"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memorylake/memorylake-go/filesystem"
	"github.com/memorylake/memorylake-go/memorytool"
)

func TestToolParam(t *testing.T) {
	param := ToolParam()

	payload, err := json.Marshal(param)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "memory", decoded["name"])

	schema, ok := decoded["input_schema"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", schema["type"])
	properties, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, properties, "command")
	assert.Contains(t, properties, "path")
}

func newStore(t *testing.T) memorytool.Store {
	t.Helper()
	tool, err := filesystem.New(t.TempDir())
	require.NoError(t, err)
	return tool
}

func resultJSON(t *testing.T, block anthropicsdk.ContentBlockParamUnion) map[string]any {
	t.Helper()
	payload, err := json.Marshal(block)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	return decoded
}

func TestRunToolUse(t *testing.T) {
	store := newStore(t)

	block := anthropicsdk.ToolUseBlock{
		ID:   "toolu_01",
		Name: "memory",
	}
	require.NoError(t, json.Unmarshal(
		[]byte(`{"command":"create","path":"/memories/a.txt","file_text":"hello"}`),
		&block.Input,
	))

	result := RunToolUse(context.Background(), store, block)

	decoded := resultJSON(t, result)
	assert.Equal(t, "tool_result", decoded["type"])
	assert.Equal(t, "toolu_01", decoded["tool_use_id"])
	assert.NotEqual(t, true, decoded["is_error"])
	assert.Contains(t, string(mustMarshal(t, decoded["content"])), "File created: /memories/a.txt")

	exists, err := store.MemoryExists(context.Background(), "/memories/a.txt")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRunToolUse_ToolFailure(t *testing.T) {
	store := newStore(t)

	block := anthropicsdk.ToolUseBlock{
		ID:   "toolu_02",
		Name: "memory",
	}
	require.NoError(t, json.Unmarshal(
		[]byte(`{"command":"view","path":"/etc/passwd"}`),
		&block.Input,
	))

	result := RunToolUse(context.Background(), store, block)

	decoded := resultJSON(t, result)
	assert.Equal(t, "toolu_02", decoded["tool_use_id"])
	assert.Equal(t, true, decoded["is_error"])
	assert.Contains(t, string(mustMarshal(t, decoded["content"])), "must start with /memories")
}

func TestRunToolUse_InvalidCommand(t *testing.T) {
	store := newStore(t)

	block := anthropicsdk.ToolUseBlock{
		ID:   "toolu_03",
		Name: "memory",
	}
	require.NoError(t, json.Unmarshal([]byte(`{"command":"shred"}`), &block.Input))

	result := RunToolUse(context.Background(), store, block)

	decoded := resultJSON(t, result)
	assert.Equal(t, true, decoded["is_error"])
	assert.Contains(t, string(mustMarshal(t, decoded["content"])), "unknown command")
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	payload, err := json.Marshal(v)
	require.NoError(t, err)
	return payload
}
