package memorytool

import (
	"encoding/json"
	"fmt"
)

// NamespacePrefix is the virtual path prefix every memory path must carry.
const NamespacePrefix = "/memories"

// Wire values of the "command" discriminator field.
const (
	CommandView           = "view"
	CommandCreate         = "create"
	CommandStrReplace     = "str_replace"
	CommandInsert         = "insert"
	CommandDelete         = "delete"
	CommandRename         = "rename"
	CommandClearAllMemory = "clear_all_memory"
)

// Command is the sealed union of memory tool commands. Exactly one concrete
// command type exists per wire discriminator; Execute switches over them
// exhaustively.
type Command interface {
	// CommandName returns the wire discriminator for this command.
	CommandName() string

	sealed()
}

// ViewCommand renders a directory listing or a line-numbered file view.
type ViewCommand struct {
	Path string `json:"path"`
	// ViewRange optionally restricts the view to [start, end] 1-based
	// inclusive lines; end == -1 reads to the end of the file.
	ViewRange []int `json:"view_range,omitempty"`
}

func (ViewCommand) CommandName() string { return CommandView }
func (ViewCommand) sealed()             {}

// CreateCommand writes FileText to Path, creating parent directories and
// overwriting any existing file.
type CreateCommand struct {
	Path     string `json:"path"`
	FileText string `json:"file_text"`
}

func (CreateCommand) CommandName() string { return CommandCreate }
func (CreateCommand) sealed()             {}

// StrReplaceCommand replaces the single occurrence of OldStr with NewStr.
type StrReplaceCommand struct {
	Path   string `json:"path"`
	OldStr string `json:"old_str"`
	NewStr string `json:"new_str"`
}

func (StrReplaceCommand) CommandName() string { return CommandStrReplace }
func (StrReplaceCommand) sealed()             {}

// InsertCommand inserts InsertText before line InsertLine (0 = before the
// first line, N = append after the last of N lines).
type InsertCommand struct {
	Path       string `json:"path"`
	InsertLine int    `json:"insert_line"`
	InsertText string `json:"insert_text"`
}

func (InsertCommand) CommandName() string { return CommandInsert }
func (InsertCommand) sealed()             {}

// DeleteCommand removes a file or a directory subtree. The /memories root
// itself is never deletable.
type DeleteCommand struct {
	Path string `json:"path"`
}

func (DeleteCommand) CommandName() string { return CommandDelete }
func (DeleteCommand) sealed()             {}

// RenameCommand moves OldPath to NewPath without overwriting.
type RenameCommand struct {
	OldPath string `json:"old_path"`
	NewPath string `json:"new_path"`
}

func (RenameCommand) CommandName() string { return CommandRename }
func (RenameCommand) sealed()             {}

// ClearAllMemoryCommand wipes the entire memory root and recreates it empty.
type ClearAllMemoryCommand struct{}

func (ClearAllMemoryCommand) CommandName() string { return CommandClearAllMemory }
func (ClearAllMemoryCommand) sealed()             {}

// MarshalCommand encodes a command as its wire payload, including the
// "command" discriminator. Fields that are always part of a command's shape
// (old_str, new_str, insert_line) are emitted even when zero-valued.
func MarshalCommand(cmd Command) ([]byte, error) {
	switch c := cmd.(type) {
	case ViewCommand:
		return json.Marshal(struct {
			Command   string `json:"command"`
			Path      string `json:"path"`
			ViewRange []int  `json:"view_range,omitempty"`
		}{CommandView, c.Path, c.ViewRange})
	case CreateCommand:
		return json.Marshal(struct {
			Command  string `json:"command"`
			Path     string `json:"path"`
			FileText string `json:"file_text"`
		}{CommandCreate, c.Path, c.FileText})
	case StrReplaceCommand:
		return json.Marshal(struct {
			Command string `json:"command"`
			Path    string `json:"path"`
			OldStr  string `json:"old_str"`
			NewStr  string `json:"new_str"`
		}{CommandStrReplace, c.Path, c.OldStr, c.NewStr})
	case InsertCommand:
		return json.Marshal(struct {
			Command    string `json:"command"`
			Path       string `json:"path"`
			InsertLine int    `json:"insert_line"`
			InsertText string `json:"insert_text"`
		}{CommandInsert, c.Path, c.InsertLine, c.InsertText})
	case DeleteCommand:
		return json.Marshal(struct {
			Command string `json:"command"`
			Path    string `json:"path"`
		}{CommandDelete, c.Path})
	case RenameCommand:
		return json.Marshal(struct {
			Command string `json:"command"`
			OldPath string `json:"old_path"`
			NewPath string `json:"new_path"`
		}{CommandRename, c.OldPath, c.NewPath})
	case ClearAllMemoryCommand:
		return json.Marshal(struct {
			Command string `json:"command"`
		}{CommandClearAllMemory})
	default:
		return nil, fmt.Errorf("memorytool: unknown command type %T", cmd)
	}
}

// UnmarshalCommand decodes a wire payload into its typed command, keyed on
// the "command" discriminator, and validates the command shape.
func UnmarshalCommand(payload []byte) (Command, error) {
	var env struct {
		Command    string `json:"command"`
		Path       string `json:"path"`
		FileText   string `json:"file_text"`
		OldStr     string `json:"old_str"`
		NewStr     string `json:"new_str"`
		InsertLine *int   `json:"insert_line"`
		InsertText string `json:"insert_text"`
		OldPath    string `json:"old_path"`
		NewPath    string `json:"new_path"`
		ViewRange  []int  `json:"view_range"`
	}
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("memorytool: invalid command payload: %w", err)
	}

	switch env.Command {
	case CommandView:
		if env.Path == "" {
			return nil, fmt.Errorf("memorytool: view command requires path")
		}
		if env.ViewRange != nil && len(env.ViewRange) != 2 {
			return nil, fmt.Errorf("memorytool: view_range must hold exactly two elements, got %d", len(env.ViewRange))
		}
		return ViewCommand{Path: env.Path, ViewRange: env.ViewRange}, nil
	case CommandCreate:
		if env.Path == "" {
			return nil, fmt.Errorf("memorytool: create command requires path")
		}
		return CreateCommand{Path: env.Path, FileText: env.FileText}, nil
	case CommandStrReplace:
		if env.Path == "" {
			return nil, fmt.Errorf("memorytool: str_replace command requires path")
		}
		return StrReplaceCommand{Path: env.Path, OldStr: env.OldStr, NewStr: env.NewStr}, nil
	case CommandInsert:
		if env.Path == "" {
			return nil, fmt.Errorf("memorytool: insert command requires path")
		}
		if env.InsertLine == nil {
			return nil, fmt.Errorf("memorytool: insert command requires insert_line")
		}
		return InsertCommand{Path: env.Path, InsertLine: *env.InsertLine, InsertText: env.InsertText}, nil
	case CommandDelete:
		if env.Path == "" {
			return nil, fmt.Errorf("memorytool: delete command requires path")
		}
		return DeleteCommand{Path: env.Path}, nil
	case CommandRename:
		if env.OldPath == "" || env.NewPath == "" {
			return nil, fmt.Errorf("memorytool: rename command requires old_path and new_path")
		}
		return RenameCommand{OldPath: env.OldPath, NewPath: env.NewPath}, nil
	case CommandClearAllMemory:
		return ClearAllMemoryCommand{}, nil
	case "":
		return nil, fmt.Errorf("memorytool: missing command field")
	default:
		return nil, fmt.Errorf("memorytool: unknown command %q", env.Command)
	}
}
