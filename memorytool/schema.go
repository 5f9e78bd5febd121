package memorytool

// ToolName is the tool identifier registered with LLM APIs.
const ToolName = "memory"

// ToolDescription is the model-facing description of the memory tool.
const ToolDescription = "Store, inspect and edit persistent memories as text files " +
	"under the /memories directory. Supports viewing files and directories, creating " +
	"and editing files, renaming, deleting and clearing all memories."

// InputSchema returns the JSON schema of the command union for registering
// the memory tool with a tool-calling API. The map is rebuilt on every call
// so callers may mutate their copy freely.
func InputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"command": map[string]any{
				"type":        "string",
				"description": "Memory operation to perform",
				"enum": []string{
					CommandView,
					CommandCreate,
					CommandStrReplace,
					CommandInsert,
					CommandDelete,
					CommandRename,
					CommandClearAllMemory,
				},
			},
			"path": map[string]any{
				"type":        "string",
				"description": "Memory path; must start with " + NamespacePrefix,
			},
			"view_range": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "integer"},
				"description": "Optional [start, end] line range for view, 1-based inclusive; end of -1 reads to end of file",
			},
			"file_text": map[string]any{
				"type":        "string",
				"description": "Full file contents for create",
			},
			"old_str": map[string]any{
				"type":        "string",
				"description": "Exact text to replace; must occur exactly once in the file",
			},
			"new_str": map[string]any{
				"type":        "string",
				"description": "Replacement text for str_replace",
			},
			"insert_line": map[string]any{
				"type":        "integer",
				"description": "Line position for insert: 0 prepends, N (line count) appends",
			},
			"insert_text": map[string]any{
				"type":        "string",
				"description": "Text to insert",
			},
			"old_path": map[string]any{
				"type":        "string",
				"description": "Source path for rename",
			},
			"new_path": map[string]any{
				"type":        "string",
				"description": "Destination path for rename; must not exist",
			},
		},
		"required": []string{"command"},
	}
}
