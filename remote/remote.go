package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/memorylake/memorylake-go/internal/version"
	"github.com/memorylake/memorylake-go/logging"
	"github.com/memorylake/memorylake-go/memorytool"
)

const (
	// requestVersion tags every payload with the memory tool protocol
	// revision the server must speak.
	requestVersion = "claude_memory_tool_20250818"
	apiEndpoint    = "/public/v1/memory-tool"
	versionHeader  = "x-memorylake-client-version"

	// maxResponseBytes bounds response reads; memory views are text and
	// should never come close.
	maxResponseBytes = 8 << 20
)

// DefaultTimeout is the request timeout used when none is configured.
const DefaultTimeout = 30 * time.Second

// Error is returned for every remote failure: server-reported errors,
// unexpected status codes, malformed responses and transport problems.
type Error struct {
	// Message describes the failure, carrying the server's error text when
	// one was returned.
	Message string
	// Err is the underlying transport or decoding error, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Options configures the remote client.
type Options struct {
	// Timeout applies per request when HTTPClient is nil.
	Timeout time.Duration
	// Headers are added to every request (e.g. authentication).
	Headers map[string]string
	// HTTPClient overrides the default client; Timeout is ignored then.
	HTTPClient *http.Client
	// Logger receives debug diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Client is the HTTP-backed memory store. It holds no state beyond its
// configuration; all storage and validation happens server side. Client
// implements memorytool.Store.
type Client struct {
	baseURL  string
	memoryID string
	headers  map[string]string
	http     *http.Client
	logger   logging.Logger
}

var _ memorytool.Store = (*Client)(nil)

// New creates a remote client for the given server base URL and memory id.
func New(baseURL, memoryID string, optFns ...func(o *Options)) *Client {
	opts := Options{Timeout: DefaultTimeout, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	headers := make(map[string]string, len(opts.Headers))
	for k, v := range opts.Headers {
		headers[k] = v
	}

	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		memoryID: memoryID,
		headers:  headers,
		http:     httpClient,
		logger:   opts.Logger,
	}
}

// MemoryID returns the memory identifier this client operates on.
func (c *Client) MemoryID() string { return c.memoryID }

// Close releases idle connections held by the underlying HTTP client.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// request is the wire envelope around every command payload.
type request struct {
	MemoryID string          `json:"memory_id"`
	Request  string          `json:"request"`
	Payload  json.RawMessage `json:"payload"`
}

// post sends a command payload and decodes the JSON response into out.
// Non-2xx responses are mapped to *Error, preferring the server's {error}
// body over the bare status code.
func (c *Client) post(ctx context.Context, payload []byte, out any) error {
	body, err := json.Marshal(request{
		MemoryID: c.memoryID,
		Request:  requestVersion,
		Payload:  payload,
	})
	if err != nil {
		return &Error{Message: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiEndpoint, bytes.NewReader(body))
	if err != nil {
		return &Error{Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(versionHeader, version.Version)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &Error{Message: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := fmt.Sprintf("HTTP %d", resp.StatusCode)
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &errBody) == nil && errBody.Error != "" {
			detail = errBody.Error
		} else if len(bytes.TrimSpace(data)) > 0 {
			detail = string(bytes.TrimSpace(data))
		}
		return &Error{Message: "remote command failed: " + detail}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Message: "invalid response", Err: err}
	}
	return nil
}

// execute forwards a command and returns the server's result string.
func (c *Client) execute(ctx context.Context, cmd memorytool.Command) (string, error) {
	payload, err := memorytool.MarshalCommand(cmd)
	if err != nil {
		return "", err
	}

	c.logger.Debug("executing remote memory command", "command", cmd.CommandName(), "memory_id", c.memoryID)

	var result struct {
		Content *string `json:"content"`
		Error   string  `json:"error"`
	}
	if err := c.post(ctx, payload, &result); err != nil {
		return "", err
	}
	if result.Error != "" {
		return "", &Error{Message: result.Error}
	}
	if result.Content == nil {
		return "", &Error{Message: "invalid response: missing content field"}
	}
	return *result.Content, nil
}

// View implements memorytool.Tool.
func (c *Client) View(ctx context.Context, cmd memorytool.ViewCommand) (string, error) {
	return c.execute(ctx, cmd)
}

// Create implements memorytool.Tool.
func (c *Client) Create(ctx context.Context, cmd memorytool.CreateCommand) (string, error) {
	return c.execute(ctx, cmd)
}

// StrReplace implements memorytool.Tool.
func (c *Client) StrReplace(ctx context.Context, cmd memorytool.StrReplaceCommand) (string, error) {
	return c.execute(ctx, cmd)
}

// Insert implements memorytool.Tool.
func (c *Client) Insert(ctx context.Context, cmd memorytool.InsertCommand) (string, error) {
	return c.execute(ctx, cmd)
}

// Delete implements memorytool.Tool.
func (c *Client) Delete(ctx context.Context, cmd memorytool.DeleteCommand) (string, error) {
	return c.execute(ctx, cmd)
}

// Rename implements memorytool.Tool.
func (c *Client) Rename(ctx context.Context, cmd memorytool.RenameCommand) (string, error) {
	return c.execute(ctx, cmd)
}

// ClearAllMemory implements memorytool.Tool.
func (c *Client) ClearAllMemory(ctx context.Context) (string, error) {
	return c.execute(ctx, memorytool.ClearAllMemoryCommand{})
}

// MemoryExists asks the server whether the path exists.
func (c *Client) MemoryExists(ctx context.Context, path string) (bool, error) {
	payload, err := json.Marshal(map[string]string{"command": "exists", "path": path})
	if err != nil {
		return false, &Error{Message: "encode exists payload", Err: err}
	}
	var result struct {
		Exists bool `json:"exists"`
	}
	if err := c.post(ctx, payload, &result); err != nil {
		return false, err
	}
	return result.Exists, nil
}

// ListMemories lists all memory paths under the given directory (the
// namespace root when path is empty).
func (c *Client) ListMemories(ctx context.Context, path string) ([]string, error) {
	if path == "" {
		path = memorytool.NamespacePrefix
	}
	payload, err := json.Marshal(map[string]string{"command": "list", "path": path})
	if err != nil {
		return nil, &Error{Message: "encode list payload", Err: err}
	}
	var result struct {
		Memories []string `json:"memories"`
	}
	if err := c.post(ctx, payload, &result); err != nil {
		return nil, err
	}
	return result.Memories, nil
}

// Stats fetches aggregate storage statistics for the memory.
func (c *Client) Stats(ctx context.Context) (memorytool.Stats, error) {
	payload, err := json.Marshal(map[string]string{"command": "stats"})
	if err != nil {
		return memorytool.Stats{}, &Error{Message: "encode stats payload", Err: err}
	}
	var result memorytool.Stats
	if err := c.post(ctx, payload, &result); err != nil {
		return memorytool.Stats{}, err
	}
	return result, nil
}
