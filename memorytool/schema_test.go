package memorytool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputSchema(t *testing.T) {
	schema := InputSchema()

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []string{"command"}, schema["required"])

	properties, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	for _, field := range []string{
		"command", "path", "view_range", "file_text",
		"old_str", "new_str", "insert_line", "insert_text",
		"old_path", "new_path",
	} {
		assert.Contains(t, properties, field)
	}

	command, ok := properties["command"].(map[string]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{
		CommandView, CommandCreate, CommandStrReplace, CommandInsert,
		CommandDelete, CommandRename, CommandClearAllMemory,
	}, command["enum"])
}

func TestInputSchema_FreshCopyPerCall(t *testing.T) {
	first := InputSchema()
	first["properties"].(map[string]any)["command"] = nil

	second := InputSchema()
	assert.NotNil(t, second["properties"].(map[string]any)["command"])
}
