package ycmd

import (
	"context"

	"github.com/tidwall/gjson"
)

// RequestArgs describes one backend request: the document it targets, the
// cursor position if the operation is position-addressed, the open-document
// snapshots providing context, and either an event name or completer-command
// arguments.
type RequestArgs struct {
	// FilePath is the document the request addresses.
	FilePath string

	// Position is the cursor position, or nil for position-less events.
	Position *Position

	// Documents are snapshots of the currently open documents.
	Documents []Document

	// EventName names a backend event for event notifications.
	EventName string

	// CommandArguments names an ad-hoc completer command and its arguments.
	CommandArguments []string
}

// SignedRequest is an ephemeral value built per call: one assembled request
// body bound to one live instance's transport. It is consumed once by Send or
// SendCommand and carries no independent lifecycle.
type SignedRequest struct {
	transport *Transport
	body      map[string]any
}

// NewSignedRequest assembles a request payload against a live instance. The
// editor's zero-based position is translated to the backend's one-based
// line and byte-column convention using the targeted document's snapshot.
// The instance must be one currently exposed by the supervisor; the builder
// only reads from it.
func NewSignedRequest(inst *Instance, args RequestArgs) *SignedRequest {
	body := make(map[string]any, 6)
	body["filepath"] = normalizePath(args.FilePath)

	pos := Position{}
	if args.Position != nil {
		pos = *args.Position
	}
	bp := toBackendPosition(pos, documentContent(args.Documents, args.FilePath))
	body["line_num"] = bp.LineNum
	body["column_num"] = bp.ColumnNum

	fileData := make(map[string]any, len(args.Documents))
	for _, doc := range args.Documents {
		filetypes := doc.Filetypes
		if len(filetypes) == 0 {
			filetypes = []string{}
		}
		fileData[normalizePath(doc.Path)] = map[string]any{
			"contents":  doc.Contents,
			"filetypes": filetypes,
		}
	}
	body["file_data"] = fileData

	if args.EventName != "" {
		body["event_name"] = args.EventName
	}
	if len(args.CommandArguments) > 0 {
		body["command_arguments"] = args.CommandArguments
		body["completer_target"] = "filetype_default"
	}

	return &SignedRequest{
		transport: inst.Transport(),
		body:      body,
	}
}

// Send posts the request to the given backend path as a plain event or data
// request.
func (r *SignedRequest) Send(ctx context.Context, path string) (gjson.Result, error) {
	return r.transport.Post(ctx, path, r.body)
}

// SendCommand posts the request to the completer-command endpoint. Use for
// ad-hoc completer commands (GetType, GoTo, GetDoc, ...), as opposed to
// plain event or data requests.
func (r *SignedRequest) SendCommand(ctx context.Context) (gjson.Result, error) {
	return r.transport.Post(ctx, pathRunCompleterCmd, r.body)
}
