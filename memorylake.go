// Package memorylake provides a client factory for creating memory tool
// instances backed by either the local filesystem or a remote MemoryLake
// server. Both backends implement the same memorytool.Store contract with
// identical command shapes and result string conventions, so they can be
// swapped transparently:
//
//	// Local mode
//	tool, err := memorylake.FromLocal("/path/to/storage").LocalTool()
//
//	// Remote mode
//	client := memorylake.FromRemote("https://api.memorylake.example.com", "mem-...")
//	tool, err := client.RemoteTool()
//	defer tool.Close()
package memorylake

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/memorylake/memorylake-go/filesystem"
	"github.com/memorylake/memorylake-go/logging"
	"github.com/memorylake/memorylake-go/remote"
)

// Options carries the shared configuration for both backend modes. Local
// mode requires StoragePath; remote mode requires BaseURL and MemoryID.
type Options struct {
	// BaseURL of the MemoryLake server (remote mode).
	BaseURL string
	// MemoryID identifies the memory on the server (remote mode).
	MemoryID string
	// StoragePath is the local storage base directory (local mode).
	StoragePath string
	// Timeout applies to remote requests. Defaults to remote.DefaultTimeout.
	Timeout time.Duration
	// Headers are added to every remote request (e.g. authentication).
	Headers map[string]string
	// Logger receives backend diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Client is the factory handing out configured memory tool instances.
type Client struct {
	opts Options
}

// New creates a client factory with optional overrides.
func New(optFns ...func(o *Options)) *Client {
	opts := Options{
		Timeout: remote.DefaultTimeout,
		Logger:  logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{opts: opts}
}

// FromLocal creates a client configured for local filesystem mode.
func FromLocal(storagePath string, optFns ...func(o *Options)) *Client {
	fns := append([]func(o *Options){func(o *Options) { o.StoragePath = storagePath }}, optFns...)
	return New(fns...)
}

// FromRemote creates a client configured for remote mode.
func FromRemote(baseURL, memoryID string, optFns ...func(o *Options)) *Client {
	fns := append([]func(o *Options){func(o *Options) {
		o.BaseURL = baseURL
		o.MemoryID = memoryID
	}}, optFns...)
	return New(fns...)
}

// LocalTool creates a filesystem-backed memory tool rooted at the
// configured storage path.
func (c *Client) LocalTool() (*filesystem.Tool, error) {
	if c.opts.StoragePath == "" {
		return nil, errors.New("memorylake: storage path is required for local mode")
	}
	return filesystem.New(c.opts.StoragePath, func(o *filesystem.Options) {
		o.Logger = c.opts.Logger
	})
}

// RemoteTool creates an HTTP-backed memory tool for the configured server
// and memory id.
func (c *Client) RemoteTool() (*remote.Client, error) {
	if c.opts.BaseURL == "" || c.opts.MemoryID == "" {
		return nil, errors.New("memorylake: base URL and memory id are required for remote mode")
	}
	return remote.New(c.opts.BaseURL, c.opts.MemoryID, func(o *remote.Options) {
		o.Timeout = c.opts.Timeout
		o.Headers = c.opts.Headers
		o.Logger = c.opts.Logger
	}), nil
}

// NewMemoryID mints a fresh memory identifier in the server's expected
// mem-<32 hex> format.
func NewMemoryID() string {
	return "mem-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
