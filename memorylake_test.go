package memorylake

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memorylake/memorylake-go/memorytool"
)

func TestFromLocal(t *testing.T) {
	client := FromLocal(t.TempDir())

	tool, err := client.LocalTool()
	require.NoError(t, err)

	var store memorytool.Store = tool
	result, err := store.Create(context.Background(), memorytool.CreateCommand{
		Path: "/memories/hello.txt", FileText: "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, "File created: /memories/hello.txt", result)
}

func TestLocalTool_RequiresStoragePath(t *testing.T) {
	_, err := New().LocalTool()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage path is required")
}

func TestFromRemote(t *testing.T) {
	client := FromRemote("https://memory.example.com", "mem-abc")

	tool, err := client.RemoteTool()
	require.NoError(t, err)
	defer tool.Close()
	assert.Equal(t, "mem-abc", tool.MemoryID())
}

func TestRemoteTool_RequiresBaseURLAndMemoryID(t *testing.T) {
	_, err := FromRemote("", "mem-abc").RemoteTool()
	require.Error(t, err)

	_, err = FromRemote("https://memory.example.com", "").RemoteTool()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base URL and memory id are required")
}

func TestNewMemoryID(t *testing.T) {
	pattern := regexp.MustCompile(`^mem-[0-9a-f]{32}$`)

	seen := map[string]bool{}
	for range 100 {
		id := NewMemoryID()
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
