package ycmd

import (
	"testing"
)

// testInstance builds an instance with a transport but no process, enough
// for request assembly.
func testInstance() *Instance {
	secret := []byte("0123456789abcdef")
	return &Instance{
		Port:      12345,
		secret:    secret,
		transport: NewTransport(12345, secret, TransportOptions{}),
	}
}

func TestNewSignedRequest_Body(t *testing.T) {
	docs := []Document{
		{Path: "/ws/main.py", Filetypes: []string{"python"}, Contents: "import os\nos.pa"},
		{Path: "/ws/util.py", Contents: "def helper(): pass"},
	}

	req := NewSignedRequest(testInstance(), RequestArgs{
		FilePath:  "/ws/main.py",
		Position:  &Position{Line: 1, Character: 5},
		Documents: docs,
	})

	if req.body["filepath"] != normalizePath("/ws/main.py") {
		t.Errorf("filepath = %v", req.body["filepath"])
	}
	if req.body["line_num"] != 2 {
		t.Errorf("line_num = %v, want 2", req.body["line_num"])
	}
	if req.body["column_num"] != 6 {
		t.Errorf("column_num = %v, want 6", req.body["column_num"])
	}

	fileData, ok := req.body["file_data"].(map[string]any)
	if !ok {
		t.Fatalf("file_data has wrong type: %T", req.body["file_data"])
	}
	if len(fileData) != 2 {
		t.Errorf("file_data has %d entries, want 2", len(fileData))
	}

	main, ok := fileData[normalizePath("/ws/main.py")].(map[string]any)
	if !ok {
		t.Fatal("main.py snapshot missing")
	}
	if main["contents"] != "import os\nos.pa" {
		t.Errorf("contents = %v", main["contents"])
	}
	if ft, ok := main["filetypes"].([]string); !ok || len(ft) != 1 || ft[0] != "python" {
		t.Errorf("filetypes = %v", main["filetypes"])
	}

	// A document with no declared filetypes still sends an empty list, not null.
	util := fileData[normalizePath("/ws/util.py")].(map[string]any)
	if ft, ok := util["filetypes"].([]string); !ok || ft == nil || len(ft) != 0 {
		t.Errorf("default filetypes = %v, want empty list", util["filetypes"])
	}

	if _, has := req.body["event_name"]; has {
		t.Error("plain request must not carry event_name")
	}
	if _, has := req.body["command_arguments"]; has {
		t.Error("plain request must not carry command_arguments")
	}
}

func TestNewSignedRequest_MultibyteColumn(t *testing.T) {
	docs := []Document{
		{Path: "/ws/main.py", Contents: "x = \"漢字\" + val"},
	}

	// Character 7 sits after the two CJK runes (3 bytes each).
	req := NewSignedRequest(testInstance(), RequestArgs{
		FilePath:  "/ws/main.py",
		Position:  &Position{Line: 0, Character: 7},
		Documents: docs,
	})

	if req.body["column_num"] != 12 {
		t.Errorf("column_num = %v, want byte column 12", req.body["column_num"])
	}
}

func TestNewSignedRequest_Event(t *testing.T) {
	req := NewSignedRequest(testInstance(), RequestArgs{
		FilePath:  "/ws/main.py",
		EventName: EventBufferVisit,
	})

	if req.body["event_name"] != EventBufferVisit {
		t.Errorf("event_name = %v", req.body["event_name"])
	}
	// Position-less events default to the origin in backend coordinates.
	if req.body["line_num"] != 1 || req.body["column_num"] != 1 {
		t.Errorf("default position = (%v, %v), want (1, 1)", req.body["line_num"], req.body["column_num"])
	}
}

func TestNewSignedRequest_Command(t *testing.T) {
	req := NewSignedRequest(testInstance(), RequestArgs{
		FilePath:         "/ws/main.py",
		Position:         &Position{Line: 3, Character: 0},
		CommandArguments: []string{"GetType"},
	})

	args, ok := req.body["command_arguments"].([]string)
	if !ok || len(args) != 1 || args[0] != "GetType" {
		t.Errorf("command_arguments = %v", req.body["command_arguments"])
	}
	if req.body["completer_target"] != "filetype_default" {
		t.Errorf("completer_target = %v", req.body["completer_target"])
	}
}
