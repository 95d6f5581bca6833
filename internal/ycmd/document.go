package ycmd

import (
	"path/filepath"
)

// Document is a snapshot of one open editor document, sent to the backend as
// request context so completions reflect unsaved edits.
type Document struct {
	// Path is the document's filesystem path.
	Path string

	// Filetypes are the backend filetype identifiers, most specific first.
	Filetypes []string

	// Contents is the full current buffer text.
	Contents string
}

// DocumentProvider supplies snapshots of the currently open documents. The
// editor-protocol layer implements this; the provider is read on every
// request so snapshots are always current.
type DocumentProvider interface {
	OpenDocuments() []Document
}

// StaticDocuments is a fixed DocumentProvider, convenient for one-shot tools
// and tests.
type StaticDocuments []Document

// OpenDocuments implements DocumentProvider.
func (d StaticDocuments) OpenDocuments() []Document {
	return d
}

// normalizePath resolves a path to a cleaned absolute form so backend
// filepaths and editor filepaths compare equal.
func normalizePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// documentContent returns the snapshot content for a path, if open.
func documentContent(docs []Document, path string) string {
	want := normalizePath(path)
	for _, d := range docs {
		if normalizePath(d.Path) == want {
			return d.Contents
		}
	}
	return ""
}
