package ycmd

import (
	"github.com/tidwall/gjson"
)

// Location is a backend-reported file position, in the backend's one-based
// line and byte-column convention.
type Location struct {
	FilePath  string
	LineNum   int
	ColumnNum int
}

// Diagnostic is one issue reported by the backend for a parsed file.
type Diagnostic struct {
	// Kind is the backend severity: "ERROR" or "WARNING".
	Kind string

	// Text is the human-readable message.
	Text string

	// Location is where the issue was reported.
	Location Location

	// FixitAvailable reports whether the backend offers an automated fix.
	FixitAvailable bool
}

// IsError reports whether the diagnostic is an error (as opposed to a warning).
func (d Diagnostic) IsError() bool {
	return d.Kind == "ERROR"
}

// parseDiagnostics decodes a FileReadyToParse response, keeping only the
// diagnostics whose reported filepath matches the queried document. The
// backend reports issues for every file it touched (headers, imports); the
// editor only wants the buffer it asked about.
//
// Non-array responses (the backend answers an empty object when it has
// nothing to say, and an exception object on failure) degrade to an empty
// result rather than propagating.
func parseDiagnostics(res gjson.Result, queryPath string) []Diagnostic {
	if !res.IsArray() {
		return nil
	}

	want := normalizePath(queryPath)
	var diags []Diagnostic

	res.ForEach(func(_, item gjson.Result) bool {
		loc := item.Get("location")
		if normalizePath(loc.Get("filepath").String()) != want {
			return true
		}
		diags = append(diags, Diagnostic{
			Kind: item.Get("kind").String(),
			Text: item.Get("text").String(),
			Location: Location{
				FilePath:  want,
				LineNum:   int(loc.Get("line_num").Int()),
				ColumnNum: int(loc.Get("column_num").Int()),
			},
			FixitAvailable: item.Get("fixit_available").Bool(),
		})
		return true
	})

	return diags
}
