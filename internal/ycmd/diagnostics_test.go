package ycmd

import (
	"testing"

	"github.com/tidwall/gjson"
)

func TestParseDiagnostics_FiltersByFile(t *testing.T) {
	raw := `[
		{
			"kind": "ERROR",
			"text": "invalid syntax",
			"location": {"filepath": "/ws/main.py", "line_num": 3, "column_num": 7},
			"fixit_available": false
		},
		{
			"kind": "WARNING",
			"text": "unused import",
			"location": {"filepath": "/ws/other.py", "line_num": 1, "column_num": 1},
			"fixit_available": true
		}
	]`

	diags := parseDiagnostics(gjson.Parse(raw), "/ws/main.py")

	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1 (other file filtered)", len(diags))
	}

	d := diags[0]
	if d.Kind != "ERROR" || !d.IsError() {
		t.Errorf("Kind = %q, IsError = %v", d.Kind, d.IsError())
	}
	if d.Text != "invalid syntax" {
		t.Errorf("Text = %q", d.Text)
	}
	if d.Location.LineNum != 3 || d.Location.ColumnNum != 7 {
		t.Errorf("Location = %+v", d.Location)
	}
	if d.Location.FilePath != normalizePath("/ws/main.py") {
		t.Errorf("FilePath = %q", d.Location.FilePath)
	}
}

func TestParseDiagnostics_PathNormalization(t *testing.T) {
	raw := `[
		{
			"kind": "WARNING",
			"text": "w",
			"location": {"filepath": "/ws/sub/../main.py", "line_num": 1, "column_num": 1}
		}
	]`

	// Backend and editor spellings of the same file must still match.
	diags := parseDiagnostics(gjson.Parse(raw), "/ws/main.py")
	if len(diags) != 1 {
		t.Errorf("got %d diagnostics, want 1 after normalization", len(diags))
	}
}

func TestParseDiagnostics_Degrades(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty object", `{}`},
		{"exception response", `{"exception": {"TYPE": "ValueError"}, "message": "no diagnostics"}`},
		{"string", `"unexpected"`},
		{"empty array", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := parseDiagnostics(gjson.Parse(tt.raw), "/ws/main.py")
			if len(diags) != 0 {
				t.Errorf("got %d diagnostics, want 0", len(diags))
			}
		})
	}
}
