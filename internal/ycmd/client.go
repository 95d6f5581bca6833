package ycmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/dshills/ycmdbridge/internal/logging"
)

// Client is the high-level interface to the supervised backend: completions,
// diagnostics, completer commands, and lifecycle event notifications.
//
// The client re-requests the instance from the supervisor on every operation,
// so workspace or settings changes applied through Configure transparently
// restart the backend on the next call.
type Client struct {
	sup  *Supervisor
	docs DocumentProvider
	log  *logging.Logger

	mu       sync.RWMutex
	root     string
	settings Settings
}

// ClientOptions configures a client.
type ClientOptions struct {
	// Documents supplies open-document snapshots for request context.
	Documents DocumentProvider

	// Logger receives operation logging. Defaults to a discard logger.
	Logger *logging.Logger
}

// NewClient creates a client over a supervisor. Configure must be called
// before any operation.
func NewClient(sup *Supervisor, opts ClientOptions) *Client {
	log := opts.Logger
	if log == nil {
		log = logging.Null
	}
	docs := opts.Documents
	if docs == nil {
		docs = StaticDocuments(nil)
	}
	return &Client{
		sup:  sup,
		docs: docs,
		log:  log.WithComponent("client"),
	}
}

// Configure sets the workspace root and settings used for subsequent
// operations. A change takes effect on the next operation: the supervisor
// compares structurally and replaces the backend if needed.
func (c *Client) Configure(workspaceRoot string, settings Settings) {
	c.mu.Lock()
	c.root = workspaceRoot
	c.settings = settings
	c.mu.Unlock()
}

// instance fetches the live instance for the configured workspace.
func (c *Client) instance(ctx context.Context) (*Instance, error) {
	c.mu.RLock()
	root, settings := c.root, c.settings
	c.mu.RUnlock()

	if root == "" {
		return nil, fmt.Errorf("%w: client not configured", ErrNoInstance)
	}
	return c.sup.GetInstance(ctx, root, settings)
}

// request builds a signed request against the live instance.
func (c *Client) request(ctx context.Context, filePath string, pos *Position, extra RequestArgs) (*SignedRequest, error) {
	inst, err := c.instance(ctx)
	if err != nil {
		return nil, err
	}
	extra.FilePath = filePath
	extra.Position = pos
	extra.Documents = c.docs.OpenDocuments()
	return NewSignedRequest(inst, extra), nil
}

// Completions queries completion candidates at a position.
func (c *Client) Completions(ctx context.Context, filePath string, pos Position) (*CompletionList, error) {
	req, err := c.request(ctx, filePath, &pos, RequestArgs{})
	if err != nil {
		return nil, err
	}
	res, err := req.Send(ctx, pathCompletions)
	if err != nil {
		return nil, err
	}
	return parseCompletionList(res), nil
}

// GetType returns the type of the symbol at a position.
func (c *Client) GetType(ctx context.Context, filePath string, pos Position) (string, error) {
	return c.messageCommand(ctx, filePath, pos, commandGetType)
}

// GetDoc returns full documentation for the symbol at a position.
func (c *Client) GetDoc(ctx context.Context, filePath string, pos Position) (string, error) {
	return c.messageCommand(ctx, filePath, pos, commandGetDoc)
}

// GetDocQuick returns quick (imprecise but fast) documentation for the
// symbol at a position.
func (c *Client) GetDocQuick(ctx context.Context, filePath string, pos Position) (string, error) {
	return c.messageCommand(ctx, filePath, pos, commandGetDocQuick)
}

// messageCommand runs a completer command whose response is a message or
// documentation string.
func (c *Client) messageCommand(ctx context.Context, filePath string, pos Position, command string) (string, error) {
	req, err := c.request(ctx, filePath, &pos, RequestArgs{CommandArguments: []string{command}})
	if err != nil {
		return "", err
	}
	res, err := req.SendCommand(ctx)
	if err != nil {
		return "", err
	}
	if msg := res.Get("message").String(); msg != "" {
		return msg, nil
	}
	return res.Get("detailed_info").String(), nil
}

// GoToDefinition resolves the definition of the symbol at a position. When
// the backend returns multiple candidates, the first is used.
func (c *Client) GoToDefinition(ctx context.Context, filePath string, pos Position) (*Location, error) {
	req, err := c.request(ctx, filePath, &pos, RequestArgs{CommandArguments: []string{commandGoTo}})
	if err != nil {
		return nil, err
	}
	res, err := req.SendCommand(ctx)
	if err != nil {
		return nil, err
	}

	target := res
	if res.IsArray() {
		arr := res.Array()
		if len(arr) == 0 {
			return nil, fmt.Errorf("%w: no definition found", ErrBackendStatus)
		}
		target = arr[0]
	}

	loc := &Location{
		FilePath:  normalizePath(target.Get("filepath").String()),
		LineNum:   int(target.Get("line_num").Int()),
		ColumnNum: int(target.Get("column_num").Int()),
	}
	if loc.FilePath == "" || loc.LineNum == 0 {
		return nil, fmt.Errorf("%w: malformed definition response", ErrBackendStatus)
	}
	return loc, nil
}

// Diagnostics notifies the backend the file is ready to parse and returns
// the diagnostics reported for that file. Failures degrade to an empty
// result: diagnostics are advisory and must never surface transport errors
// into the editing loop.
func (c *Client) Diagnostics(ctx context.Context, filePath string) []Diagnostic {
	res, err := c.notify(ctx, filePath, EventFileReadyToParse)
	if err != nil {
		c.log.Debug("diagnostics unavailable for %s: %v", filePath, err)
		return nil
	}
	return parseDiagnostics(res, filePath)
}

// DefinedSubcommands returns the completer commands the backend supports for
// the file's filetype.
func (c *Client) DefinedSubcommands(ctx context.Context, filePath string) ([]string, error) {
	req, err := c.request(ctx, filePath, nil, RequestArgs{})
	if err != nil {
		return nil, err
	}
	res, err := req.Send(ctx, pathDefinedSubcommands)
	if err != nil {
		return nil, err
	}

	var cmds []string
	res.ForEach(func(_, item gjson.Result) bool {
		cmds = append(cmds, item.String())
		return true
	})
	return cmds, nil
}

// DebugInfo returns the backend's debug information for the file's
// completer as raw JSON.
func (c *Client) DebugInfo(ctx context.Context, filePath string) (string, error) {
	req, err := c.request(ctx, filePath, nil, RequestArgs{})
	if err != nil {
		return "", err
	}
	res, err := req.Send(ctx, pathDebugInfo)
	if err != nil {
		return "", err
	}
	return res.Raw, nil
}

// NotifyBufferVisit tells the backend a buffer became active. Fire and
// forget: failures are logged, not returned.
func (c *Client) NotifyBufferVisit(ctx context.Context, filePath string) {
	c.notifyQuiet(ctx, filePath, EventBufferVisit)
}

// NotifyBufferUnload tells the backend a buffer was closed.
func (c *Client) NotifyBufferUnload(ctx context.Context, filePath string) {
	c.notifyQuiet(ctx, filePath, EventBufferUnload)
}

// NotifyIdentifierFinished tells the backend the current identifier was
// completed.
func (c *Client) NotifyIdentifierFinished(ctx context.Context, filePath string) {
	c.notifyQuiet(ctx, filePath, EventCurrentIdentifierFinished)
}

// NotifyInsertLeave tells the backend insert mode was left.
func (c *Client) NotifyInsertLeave(ctx context.Context, filePath string) {
	c.notifyQuiet(ctx, filePath, EventInsertLeave)
}

// notify sends an event notification and returns the raw response.
func (c *Client) notify(ctx context.Context, filePath, event string) (gjson.Result, error) {
	req, err := c.request(ctx, filePath, nil, RequestArgs{EventName: event})
	if err != nil {
		return gjson.Result{}, err
	}
	return req.Send(ctx, pathEventNotification)
}

// notifyQuiet sends a fire-and-forget event notification.
func (c *Client) notifyQuiet(ctx context.Context, filePath, event string) {
	if _, err := c.notify(ctx, filePath, event); err != nil {
		c.log.Debug("event %s for %s: %v", event, filePath, err)
	}
}

// Shutdown reaps the backend and closes the supervisor.
func (c *Client) Shutdown(ctx context.Context) {
	c.sup.Close(ctx)
}
