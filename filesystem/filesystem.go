package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/memorylake/memorylake-go/logging"
	"github.com/memorylake/memorylake-go/memorytool"
)

const memoryRootName = "memories"

// DefaultBasePath is the conventional storage location used when no base
// path is supplied.
const DefaultBasePath = "./memory"

// Options configures the filesystem store.
type Options struct {
	// Logger receives debug diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Tool is the filesystem-backed memory store. The virtual /memories
// namespace is rooted at <basePath>/memories, which is created on
// construction. Tool implements memorytool.Store.
type Tool struct {
	basePath   string
	memoryRoot string
	logger     logging.Logger
}

var _ memorytool.Store = (*Tool)(nil)

// New creates a filesystem store rooted at basePath (DefaultBasePath when
// empty), creating the memory root directory and any parents as needed.
func New(basePath string, optFns ...func(o *Options)) (*Tool, error) {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	if basePath == "" {
		basePath = DefaultBasePath
	}
	absBase, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("filesystem: resolve base path: %w", err)
	}
	root := filepath.Join(absBase, memoryRootName)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("filesystem: create memory root: %w", err)
	}

	// Containment checks compare canonical paths, so the root itself must
	// be canonical (symlinked temp dirs, /var vs /private/var, etc.).
	evalRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("filesystem: canonicalize memory root: %w", err)
	}

	return &Tool{basePath: absBase, memoryRoot: evalRoot, logger: opts.Logger}, nil
}

// BasePath returns the absolute storage base directory.
func (t *Tool) BasePath() string { return t.basePath }

// MemoryRoot returns the canonical directory backing the /memories
// namespace.
func (t *Tool) MemoryRoot() string { return t.memoryRoot }

// resolve maps a virtual memory path onto its concrete filesystem location.
// It is pure path arithmetic plus a containment check; nothing is created
// or modified. Every operation goes through here first.
func (t *Tool) resolve(memoryPath string) (string, error) {
	if !strings.HasPrefix(memoryPath, memorytool.NamespacePrefix) {
		return "", &memorytool.PathError{
			Path:   memoryPath,
			Reason: "path must start with " + memorytool.NamespacePrefix,
		}
	}

	rel := strings.TrimLeft(memoryPath[len(memorytool.NamespacePrefix):], "/")
	target := t.memoryRoot
	if rel != "" {
		target = filepath.Join(t.memoryRoot, filepath.FromSlash(rel))
	}

	resolved := canonicalize(target)
	if !t.contains(resolved) {
		return "", &memorytool.PathError{Path: memoryPath, Reason: "path escapes memory root"}
	}
	return resolved, nil
}

// contains reports whether the canonical path is the memory root or one of
// its descendants.
func (t *Tool) contains(resolved string) bool {
	sep := string(filepath.Separator)
	return resolved == t.memoryRoot || strings.HasPrefix(resolved+sep, t.memoryRoot+sep)
}

// canonicalize resolves symlinks in path. For targets that do not exist yet
// it walks up to the nearest existing ancestor, resolves that, and rejoins
// the missing components so the containment check still sees through
// symlinked parents.
func canonicalize(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}

	var missing []string
	current := path
	for {
		if resolved, err := filepath.EvalSymlinks(current); err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved
		}
		dir := filepath.Dir(current)
		if dir == current {
			return path
		}
		missing = append(missing, filepath.Base(current))
		current = dir
	}
}

// View renders a directory listing or a line-numbered file view.
func (t *Tool) View(_ context.Context, cmd memorytool.ViewCommand) (string, error) {
	if cmd.ViewRange != nil && len(cmd.ViewRange) != 2 {
		return "", &memorytool.OperationError{
			Reason: fmt.Sprintf("view_range must hold exactly two elements, got %d", len(cmd.ViewRange)),
		}
	}

	target, err := t.resolve(cmd.Path)
	if err != nil {
		return "", err
	}

	info, statErr := os.Stat(target)
	if statErr == nil && info.IsDir() {
		return t.viewDirectory(cmd.Path, target)
	}
	if statErr != nil || !info.Mode().IsRegular() {
		return "", &memorytool.OperationError{Reason: "path does not exist: " + cmd.Path}
	}
	return t.viewFile(cmd.Path, target, cmd.ViewRange)
}

func (t *Tool) viewDirectory(memoryPath, target string) (string, error) {
	entries, err := os.ReadDir(target)
	if err != nil {
		return "", &memorytool.OperationError{Reason: "read directory " + memoryPath, Err: err}
	}

	var b strings.Builder
	b.WriteString("Directory: " + memoryPath)
	for _, entry := range entries { // ReadDir sorts by name
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		b.WriteString("\n- " + entry.Name())
		if entry.IsDir() {
			b.WriteString("/")
		}
	}
	return b.String(), nil
}

func (t *Tool) viewFile(memoryPath, target string, viewRange []int) (string, error) {
	raw, err := os.ReadFile(target)
	if err != nil {
		return "", &memorytool.OperationError{Reason: "read file " + memoryPath, Err: err}
	}

	lines := splitLines(string(raw))
	base := 1
	if len(viewRange) == 2 {
		start := viewRange[0]
		if start < 1 {
			start = 1
		}
		base = start
		startIdx := min(start-1, len(lines))
		endIdx := len(lines)
		if viewRange[1] != -1 {
			endIdx = max(viewRange[1], startIdx+1)
		}
		endIdx = min(endIdx, len(lines))
		if endIdx < startIdx {
			endIdx = startIdx
		}
		lines = lines[startIdx:endIdx]
	}

	var b strings.Builder
	b.WriteString("File: " + memoryPath)
	if len(lines) == 0 {
		b.WriteString("\n(empty file)")
		return b.String(), nil
	}
	for i, line := range lines {
		fmt.Fprintf(&b, "\n%4d: %s", base+i, line)
	}
	return b.String(), nil
}

// Create writes the file, creating parent directories as needed and
// overwriting unconditionally.
func (t *Tool) Create(_ context.Context, cmd memorytool.CreateCommand) (string, error) {
	target, err := t.resolve(cmd.Path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", &memorytool.OperationError{Reason: "create parent directories for " + cmd.Path, Err: err}
	}
	if err := os.WriteFile(target, []byte(cmd.FileText), 0o644); err != nil {
		return "", &memorytool.OperationError{Reason: "write file " + cmd.Path, Err: err}
	}
	t.logger.Debug("memory file written", "path", cmd.Path, "bytes", len(cmd.FileText))
	return "File created: " + cmd.Path, nil
}

// StrReplace replaces the unique occurrence of OldStr with NewStr. An
// ambiguous match count refuses the edit rather than guessing.
func (t *Tool) StrReplace(_ context.Context, cmd memorytool.StrReplaceCommand) (string, error) {
	target, err := t.resolve(cmd.Path)
	if err != nil {
		return "", err
	}
	if !isRegularFile(target) {
		return "", &memorytool.OperationError{Reason: "file not found: " + cmd.Path}
	}

	raw, err := os.ReadFile(target)
	if err != nil {
		return "", &memorytool.OperationError{Reason: "read file " + cmd.Path, Err: err}
	}
	content := string(raw)

	matches := strings.Count(content, cmd.OldStr)
	if matches == 0 {
		return "", &memorytool.OperationError{Reason: "text not found in " + cmd.Path}
	}
	if matches > 1 {
		return "", &memorytool.OperationError{
			Reason: fmt.Sprintf("text appears %d times in %s; must be unique", matches, cmd.Path),
		}
	}

	updated := strings.Replace(content, cmd.OldStr, cmd.NewStr, 1)
	if err := os.WriteFile(target, []byte(updated), 0o644); err != nil {
		return "", &memorytool.OperationError{Reason: "write file " + cmd.Path, Err: err}
	}
	return "File updated: " + cmd.Path, nil
}

// Insert inserts InsertText before the 0-based InsertLine and rewrites the
// file with a single trailing newline.
func (t *Tool) Insert(_ context.Context, cmd memorytool.InsertCommand) (string, error) {
	target, err := t.resolve(cmd.Path)
	if err != nil {
		return "", err
	}
	if !isRegularFile(target) {
		return "", &memorytool.OperationError{Reason: "file not found: " + cmd.Path}
	}

	raw, err := os.ReadFile(target)
	if err != nil {
		return "", &memorytool.OperationError{Reason: "read file " + cmd.Path, Err: err}
	}

	lines := splitLines(string(raw))
	if cmd.InsertLine < 0 || cmd.InsertLine > len(lines) {
		return "", &memorytool.OperationError{
			Reason: fmt.Sprintf("insert_line must be between 0 and %d, got %d", len(lines), cmd.InsertLine),
		}
	}

	lines = slices.Insert(lines, cmd.InsertLine, strings.TrimRight(cmd.InsertText, "\n"))
	if err := os.WriteFile(target, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		return "", &memorytool.OperationError{Reason: "write file " + cmd.Path, Err: err}
	}
	return "Line inserted in " + cmd.Path, nil
}

// Delete removes a file or a directory subtree. The namespace root itself
// is refused regardless of store contents.
func (t *Tool) Delete(_ context.Context, cmd memorytool.DeleteCommand) (string, error) {
	if strings.TrimRight(cmd.Path, "/") == memorytool.NamespacePrefix {
		return "", &memorytool.PathError{
			Path:   cmd.Path,
			Reason: "refusing to delete the " + memorytool.NamespacePrefix + " root",
		}
	}

	target, err := t.resolve(cmd.Path)
	if err != nil {
		return "", err
	}

	info, statErr := os.Stat(target)
	switch {
	case statErr == nil && info.Mode().IsRegular():
		if err := os.Remove(target); err != nil {
			return "", &memorytool.OperationError{Reason: "delete file " + cmd.Path, Err: err}
		}
		t.logger.Debug("memory file deleted", "path", cmd.Path)
		return "File deleted: " + cmd.Path, nil
	case statErr == nil && info.IsDir():
		if err := os.RemoveAll(target); err != nil {
			return "", &memorytool.OperationError{Reason: "delete directory " + cmd.Path, Err: err}
		}
		t.logger.Debug("memory directory deleted", "path", cmd.Path)
		return "Directory deleted: " + cmd.Path, nil
	default:
		return "", &memorytool.OperationError{Reason: "path does not exist: " + cmd.Path}
	}
}

// Rename moves OldPath to NewPath. The destination must not exist; parent
// directories are created as needed. The move is a single os.Rename, so
// cross-device moves surface the filesystem's own error.
func (t *Tool) Rename(_ context.Context, cmd memorytool.RenameCommand) (string, error) {
	source, err := t.resolve(cmd.OldPath)
	if err != nil {
		return "", err
	}
	destination, err := t.resolve(cmd.NewPath)
	if err != nil {
		return "", err
	}

	if !pathExists(source) {
		return "", &memorytool.OperationError{Reason: "source path not found: " + cmd.OldPath}
	}
	if pathExists(destination) {
		return "", &memorytool.OperationError{Reason: "destination already exists: " + cmd.NewPath}
	}

	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return "", &memorytool.OperationError{Reason: "create parent directories for " + cmd.NewPath, Err: err}
	}
	if err := os.Rename(source, destination); err != nil {
		return "", &memorytool.OperationError{
			Reason: fmt.Sprintf("rename %s to %s", cmd.OldPath, cmd.NewPath),
			Err:    err,
		}
	}
	return fmt.Sprintf("Renamed %s to %s", cmd.OldPath, cmd.NewPath), nil
}

// ClearAllMemory removes the entire memory root and recreates it empty.
// Confirmation, if any, belongs to the calling UI.
func (t *Tool) ClearAllMemory(_ context.Context) (string, error) {
	if err := os.RemoveAll(t.memoryRoot); err != nil {
		return "", &memorytool.OperationError{Reason: "clear memory root", Err: err}
	}
	if err := os.MkdirAll(t.memoryRoot, 0o755); err != nil {
		return "", &memorytool.OperationError{Reason: "recreate memory root", Err: err}
	}
	t.logger.Debug("memory root cleared", "root", t.memoryRoot)
	return "Cleared all memories", nil
}

// MemoryExists reports whether the resolved path exists. Path validation
// errors propagate; unexpected stat failures are wrapped.
func (t *Tool) MemoryExists(_ context.Context, path string) (bool, error) {
	target, err := t.resolve(path)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &memorytool.OperationError{Reason: "stat " + path, Err: err}
	}
	return true, nil
}

// ListMemories enumerates every descendant of the given directory as
// namespace-qualified paths in lexicographic order, directories suffixed
// with "/". Dot-named entries are skipped together with their subtrees.
func (t *Tool) ListMemories(_ context.Context, path string) ([]string, error) {
	if path == "" {
		path = memorytool.NamespacePrefix
	}
	target, err := t.resolve(path)
	if err != nil {
		return nil, err
	}

	info, statErr := os.Stat(target)
	if statErr != nil || !info.IsDir() {
		return nil, &memorytool.OperationError{Reason: "path is not a directory: " + path}
	}

	var results []string
	walkErr := filepath.WalkDir(target, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == target {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(t.memoryRoot, p)
		if relErr != nil {
			return relErr
		}
		display := memorytool.NamespacePrefix + "/" + filepath.ToSlash(rel)
		if d.IsDir() {
			display += "/"
		}
		results = append(results, display)
		return nil
	})
	if walkErr != nil {
		return nil, &memorytool.OperationError{Reason: "list memories under " + path, Err: walkErr}
	}
	return results, nil
}

// Stats walks the memory root counting files, directories and total file
// bytes. A missing root yields all zeros.
func (t *Tool) Stats(_ context.Context) (memorytool.Stats, error) {
	var totals memorytool.Stats

	if _, err := os.Stat(t.memoryRoot); err != nil {
		if os.IsNotExist(err) {
			return totals, nil
		}
		return totals, &memorytool.OperationError{Reason: "stat memory root", Err: err}
	}

	walkErr := filepath.WalkDir(t.memoryRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == t.memoryRoot {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			totals.Directories++
			return nil
		}
		if d.Type().IsRegular() {
			info, infoErr := d.Info()
			if infoErr != nil {
				return infoErr
			}
			totals.Files++
			totals.Bytes += info.Size()
		}
		return nil
	})
	if walkErr != nil {
		return memorytool.Stats{}, &memorytool.OperationError{Reason: "walk memory root", Err: walkErr}
	}
	return totals, nil
}

// splitLines splits text into lines the way editors count them: the final
// trailing newline does not open an extra empty line, and empty content has
// zero lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
