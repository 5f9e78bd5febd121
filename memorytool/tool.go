package memorytool

import (
	"context"
	"fmt"
)

// Stats aggregates the contents of the memory root.
type Stats struct {
	Files       int   `json:"files"`
	Directories int   `json:"directories"`
	Bytes       int64 `json:"bytes"`
}

// Tool is the memory tool command surface invoked by LLM tool-calling
// runtimes. Every operation returns the human-readable result string the
// model sees. The context is honored by network-backed implementations and
// ignored by the local filesystem store.
type Tool interface {
	View(ctx context.Context, cmd ViewCommand) (string, error)
	Create(ctx context.Context, cmd CreateCommand) (string, error)
	StrReplace(ctx context.Context, cmd StrReplaceCommand) (string, error)
	Insert(ctx context.Context, cmd InsertCommand) (string, error)
	Delete(ctx context.Context, cmd DeleteCommand) (string, error)
	Rename(ctx context.Context, cmd RenameCommand) (string, error)
	ClearAllMemory(ctx context.Context) (string, error)
}

// Store extends Tool with the management operations callers use outside of
// model-driven tool calls.
type Store interface {
	Tool

	// MemoryExists reports whether the path resolves to an existing entry.
	MemoryExists(ctx context.Context, path string) (bool, error)
	// ListMemories enumerates every descendant of the given directory as
	// namespace-qualified paths, directories suffixed with "/".
	ListMemories(ctx context.Context, path string) ([]string, error)
	// Stats counts files, directories and total file bytes under the root.
	Stats(ctx context.Context) (Stats, error)
}

// Execute routes a command to the matching Tool operation. The switch is
// exhaustive over the sealed command union; an unknown type can only mean a
// programming error.
func Execute(ctx context.Context, t Tool, cmd Command) (string, error) {
	switch c := cmd.(type) {
	case ViewCommand:
		return t.View(ctx, c)
	case CreateCommand:
		return t.Create(ctx, c)
	case StrReplaceCommand:
		return t.StrReplace(ctx, c)
	case InsertCommand:
		return t.Insert(ctx, c)
	case DeleteCommand:
		return t.Delete(ctx, c)
	case RenameCommand:
		return t.Rename(ctx, c)
	case ClearAllMemoryCommand:
		return t.ClearAllMemory(ctx)
	default:
		return "", fmt.Errorf("memorytool: unhandled command type %T", cmd)
	}
}

// ExecutePayload validates and executes a raw tool payload as received from
// an LLM response.
func ExecutePayload(ctx context.Context, t Tool, payload []byte) (string, error) {
	cmd, err := UnmarshalCommand(payload)
	if err != nil {
		return "", err
	}
	return Execute(ctx, t, cmd)
}

// Convenience helpers for direct programmatic use, so callers can manage
// memories without synthesising command values themselves. They work
// against any Tool implementation.

// CreateFile writes fileText to path, overwriting any existing file.
func CreateFile(ctx context.Context, t Tool, path, fileText string) error {
	_, err := t.Create(ctx, CreateCommand{Path: path, FileText: fileText})
	return err
}

// ViewPath renders a directory listing or a numbered file view. A nil
// viewRange views the whole file.
func ViewPath(ctx context.Context, t Tool, path string, viewRange []int) (string, error) {
	return t.View(ctx, ViewCommand{Path: path, ViewRange: viewRange})
}

// ReplaceText replaces the unique occurrence of oldText with newText.
func ReplaceText(ctx context.Context, t Tool, path, oldText, newText string) error {
	_, err := t.StrReplace(ctx, StrReplaceCommand{Path: path, OldStr: oldText, NewStr: newText})
	return err
}

// InsertLine inserts text before the 0-based lineIndex.
func InsertLine(ctx context.Context, t Tool, path string, lineIndex int, text string) error {
	_, err := t.Insert(ctx, InsertCommand{Path: path, InsertLine: lineIndex, InsertText: text})
	return err
}

// DeletePath removes the file or directory subtree at path.
func DeletePath(ctx context.Context, t Tool, path string) error {
	_, err := t.Delete(ctx, DeleteCommand{Path: path})
	return err
}

// RenamePath moves oldPath to newPath without overwriting.
func RenamePath(ctx context.Context, t Tool, oldPath, newPath string) error {
	_, err := t.Rename(ctx, RenameCommand{OldPath: oldPath, NewPath: newPath})
	return err
}
