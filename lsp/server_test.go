package lsp

import (
	"testing"

	"github.com/dhamidi/nixel/ast"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func newDocument(text string) *document {
	doc := &document{
		text:  text,
		parse: ast.ParseRoot(text),
		lines: lineStarts(text),
	}
	doc.idents = collectIdents(doc.parse.Syntax())
	return doc
}

func TestPositionConversion(t *testing.T) {
	doc := newDocument("let\n  x = 1;\nin x")

	tests := []struct {
		offset int
		line   uint32
		char   uint32
	}{
		{0, 0, 0},
		{3, 0, 3},
		{4, 1, 0},
		{6, 1, 2},
		{13, 2, 0},
	}

	for _, tt := range tests {
		pos := doc.position(tt.offset)
		if pos.Line != protocol.UInteger(tt.line) || pos.Character != protocol.UInteger(tt.char) {
			t.Errorf("position(%d) = %d:%d, want %d:%d", tt.offset, pos.Line, pos.Character, tt.line, tt.char)
		}
		back := doc.offset(protocol.Position{Line: protocol.UInteger(tt.line), Character: protocol.UInteger(tt.char)})
		if back != tt.offset {
			t.Errorf("offset(%d:%d) = %d, want %d", tt.line, tt.char, back, tt.offset)
		}
	}
}

func TestOffsetClamping(t *testing.T) {
	doc := newDocument("ab\ncd")
	if got := doc.offset(protocol.Position{Line: 9, Character: 0}); got != len(doc.text) {
		t.Errorf("offset past the end = %d, want %d", got, len(doc.text))
	}
	if got := doc.offset(protocol.Position{Line: 0, Character: 99}); got != 3 {
		t.Errorf("offset past the line end = %d, want 3", got)
	}
}

func TestCollectIdents(t *testing.T) {
	doc := newDocument("let foo = bar; in foo baz")
	want := []string{"bar", "baz", "foo"}
	if len(doc.idents) != len(want) {
		t.Fatalf("idents = %v, want %v", doc.idents, want)
	}
	for i, id := range want {
		if doc.idents[i] != id {
			t.Errorf("idents[%d] = %q, want %q", i, doc.idents[i], id)
		}
	}
}

func TestIdentPrefix(t *testing.T) {
	tests := []struct {
		text   string
		offset int
		want   string
	}{
		{"foo", 3, "foo"},
		{"foo bar", 7, "bar"},
		{"foo ", 4, ""},
		{"a.b", 3, "b"},
		{"", 0, ""},
	}

	for _, tt := range tests {
		if got := identPrefix(tt.text, tt.offset); got != tt.want {
			t.Errorf("identPrefix(%q, %d) = %q, want %q", tt.text, tt.offset, got, tt.want)
		}
	}
}
