package ycmd

import (
	"testing"
)

func TestToBackendPosition(t *testing.T) {
	// Line 0: ASCII. Line 1: two-byte runes. Line 2: CJK (three bytes).
	// Line 3: emoji (four bytes, surrogate pair in UTF-16).
	content := "hello world\nné là\n漢字テスト\nab🚀cd"

	tests := []struct {
		name   string
		pos    Position
		line   int
		column int
	}{
		{"origin", Position{0, 0}, 1, 1},
		{"ascii middle", Position{0, 6}, 1, 7},
		{"ascii end", Position{0, 11}, 1, 12},
		{"before accent", Position{1, 1}, 2, 2},
		{"after accent", Position{1, 2}, 2, 4},
		{"after second accent", Position{1, 5}, 2, 8},
		{"cjk start", Position{2, 0}, 3, 1},
		{"after one cjk rune", Position{2, 1}, 3, 4},
		{"after two cjk runes", Position{2, 2}, 3, 7},
		{"before emoji", Position{3, 2}, 4, 3},
		{"after emoji surrogate pair", Position{3, 4}, 4, 7},
		{"clamp past line end", Position{0, 99}, 1, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toBackendPosition(tt.pos, content)
			if got.LineNum != tt.line || got.ColumnNum != tt.column {
				t.Errorf("toBackendPosition(%+v) = (%d, %d), want (%d, %d)",
					tt.pos, got.LineNum, got.ColumnNum, tt.line, tt.column)
			}
		})
	}
}

func TestToBackendPosition_NoContent(t *testing.T) {
	// Without content the character offset passes through as a byte column.
	got := toBackendPosition(Position{Line: 4, Character: 7}, "")
	if got.LineNum != 5 || got.ColumnNum != 8 {
		t.Errorf("got (%d, %d), want (5, 8)", got.LineNum, got.ColumnNum)
	}
}

func TestToBackendPosition_LineOutOfRange(t *testing.T) {
	got := toBackendPosition(Position{Line: 10, Character: 3}, "only one line")
	if got.LineNum != 11 || got.ColumnNum != 4 {
		t.Errorf("got (%d, %d), want passthrough (11, 4)", got.LineNum, got.ColumnNum)
	}
}

func TestFromBackendPosition(t *testing.T) {
	content := "hello world\nné là\n漢字テスト"

	tests := []struct {
		name      string
		lineNum   int
		columnNum int
		want      Position
	}{
		{"origin", 1, 1, Position{0, 0}},
		{"ascii", 1, 7, Position{0, 6}},
		{"after accent bytes", 2, 4, Position{1, 2}},
		{"cjk", 3, 4, Position{2, 1}},
		{"clamped negatives", 0, 0, Position{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fromBackendPosition(tt.lineNum, tt.columnNum, content)
			if got != tt.want {
				t.Errorf("fromBackendPosition(%d, %d) = %+v, want %+v",
					tt.lineNum, tt.columnNum, got, tt.want)
			}
		})
	}
}

func TestPositionRoundTrip(t *testing.T) {
	content := "alpha\nbé𝛄a line\nlast"

	positions := []Position{
		{0, 0}, {0, 3}, {1, 0}, {1, 1}, {1, 2}, {1, 4}, {1, 6}, {2, 4},
	}

	for _, pos := range positions {
		bp := toBackendPosition(pos, content)
		back := fromBackendPosition(bp.LineNum, bp.ColumnNum, content)
		if back != pos {
			t.Errorf("round trip %+v -> (%d,%d) -> %+v", pos, bp.LineNum, bp.ColumnNum, back)
		}
	}
}
