package ycmd

import (
	"strings"
)

// utf16RuneLen mirrors unicode/utf16.RuneLen, which is only available in
// Go 1.23+; the build toolchain here is older.
func utf16RuneLen(r rune) int {
	switch {
	case 0 <= r && r < 0xD800, 0xE000 <= r && r < 0x10000:
		return 1
	case 0x10000 <= r && r <= 0x10FFFF:
		return 2
	default:
		return -1
	}
}

// Position is an editor-reported position: zero-based line, zero-based
// character offset in UTF-16 code units (the editor protocol convention).
type Position struct {
	Line      int
	Character int
}

// backendPosition is the backend's coordinate convention: one-based line,
// one-based byte column.
type backendPosition struct {
	LineNum   int
	ColumnNum int
}

// toBackendPosition translates an editor position into the backend's
// convention using the document content to resolve UTF-16 character offsets
// into byte offsets. With empty content the character offset is assumed to be
// a byte offset already (ASCII-safe fallback).
func toBackendPosition(pos Position, content string) backendPosition {
	bp := backendPosition{
		LineNum:   pos.Line + 1,
		ColumnNum: pos.Character + 1,
	}
	if content == "" {
		return bp
	}

	line, ok := lineAt(content, pos.Line)
	if !ok {
		return bp
	}
	bp.ColumnNum = byteColumn(line, pos.Character) + 1
	return bp
}

// fromBackendPosition translates a backend line/column pair back into
// editor coordinates. The byte column is resolved against the line content
// when available.
func fromBackendPosition(lineNum, columnNum int, content string) Position {
	pos := Position{Line: lineNum - 1, Character: columnNum - 1}
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Character < 0 {
		pos.Character = 0
	}
	if content == "" {
		return pos
	}

	line, ok := lineAt(content, pos.Line)
	if !ok {
		return pos
	}
	pos.Character = utf16Column(line, columnNum-1)
	return pos
}

// lineAt returns the given zero-based line of content.
func lineAt(content string, line int) (string, bool) {
	if line < 0 {
		return "", false
	}
	lines := strings.Split(content, "\n")
	if line >= len(lines) {
		return "", false
	}
	return lines[line], true
}

// byteColumn converts a UTF-16 character offset within a line to a byte
// offset. Offsets past the end of the line clamp to the line length.
func byteColumn(line string, character int) int {
	if character <= 0 {
		return 0
	}

	u16 := 0
	for i, r := range line {
		if u16 >= character {
			return i
		}
		u16 += utf16RuneLen(r)
	}
	return len(line)
}

// utf16Column converts a byte offset within a line to a UTF-16 character
// offset. Offsets past the end clamp to the line's UTF-16 length.
func utf16Column(line string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}

	u16 := 0
	for i, r := range line {
		if i >= byteOffset {
			return u16
		}
		u16 += utf16RuneLen(r)
	}
	return u16
}
