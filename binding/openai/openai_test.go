package openai

import (
	"context"
	"encoding/json"
	"testing"

	openaisdk "github.com/openai/openai-go"
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
	assert.Equal(t, "function", decoded["type"])

	function, ok := decoded["function"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "memory", function["name"])

	parameters, ok := function["parameters"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", parameters["type"])
}

func newStore(t *testing.T) memorytool.Store {
	t.Helper()
	tool, err := filesystem.New(t.TempDir())
	require.NoError(t, err)
	return tool
}

func messageJSON(t *testing.T, msg openaisdk.ChatCompletionMessageParamUnion) map[string]any {
	t.Helper()
	payload, err := json.Marshal(msg)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	return decoded
}

func TestRunToolCall(t *testing.T) {
	store := newStore(t)

	call := openaisdk.ChatCompletionMessageToolCall{
		ID: "call_01",
		Function: openaisdk.ChatCompletionMessageToolCallFunction{
			Name:      "memory",
			Arguments: `{"command":"create","path":"/memories/a.txt","file_text":"hello"}`,
		},
	}

	msg := RunToolCall(context.Background(), store, call)

	decoded := messageJSON(t, msg)
	assert.Equal(t, "tool", decoded["role"])
	assert.Equal(t, "call_01", decoded["tool_call_id"])
	content, err := json.Marshal(decoded["content"])
	require.NoError(t, err)
	assert.Contains(t, string(content), "File created: /memories/a.txt")

	exists, err := store.MemoryExists(context.Background(), "/memories/a.txt")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRunToolCall_ToolFailure(t *testing.T) {
	store := newStore(t)

	call := openaisdk.ChatCompletionMessageToolCall{
		ID: "call_02",
		Function: openaisdk.ChatCompletionMessageToolCallFunction{
			Name:      "memory",
			Arguments: `{"command":"delete","path":"/memories"}`,
		},
	}

	msg := RunToolCall(context.Background(), store, call)

	decoded := messageJSON(t, msg)
	assert.Equal(t, "call_02", decoded["tool_call_id"])
	content, err := json.Marshal(decoded["content"])
	require.NoError(t, err)
	assert.Contains(t, string(content), "memory tool error")
	assert.Contains(t, string(content), "refusing to delete")
}

func TestRunToolCall_InvalidArguments(t *testing.T) {
	store := newStore(t)

	call := openaisdk.ChatCompletionMessageToolCall{
		ID: "call_03",
		Function: openaisdk.ChatCompletionMessageToolCallFunction{
			Name:      "memory",
			Arguments: `{"command":`,
		},
	}

	msg := RunToolCall(context.Background(), store, call)

	decoded := messageJSON(t, msg)
	content, err := json.Marshal(decoded["content"])
	require.NoError(t, err)
	assert.Contains(t, string(content), "memory tool error")
}
